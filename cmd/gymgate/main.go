// CLI de administración: opera contra la API REST del gateway con un
// access token de un usuario con permisos de admin.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("GYMGATE_URL", "http://localhost:8080")
		token   = envOr("GYMGATE_TOKEN", "")
		out     = envOr("GYMGATE_OUT", "text")
	)

	root := &cobra.Command{
		Use:   "gymgate",
		Short: "CLI admin para el gateway (usa la API REST con bearer token)",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del gateway (env GYMGATE_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Access token (env GYMGATE_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, Token: token, OutFormat: out, HTTP: &http.Client{Timeout: 30 * time.Second}}
	// Los flags se parsean después de construir cl: refrescar antes de cada run.
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cl.BaseURL, cl.Token, cl.OutFormat = baseURL, token, out
	}

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Chequea que el gateway responda",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/healthz", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("ping falló: status=%d body=%s", status, string(body))
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
				return nil
			}
			cl.print(status, body)
			return nil
		},
	}

	// grupo users
	usersCmd := &cobra.Command{Use: "users", Short: "Operaciones sobre usuarios"}

	var listPage, listSize int
	var listRole string
	var listInactive bool
	usersListCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista usuarios (requiere users:read)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/users/?page=%d&pageSize=%d", listPage, listSize)
			if listRole != "" {
				path += "&role=" + listRole
			}
			if listInactive {
				path += "&includeInactive=true"
			}
			status, body, err := cl.do("GET", path, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("list falló: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	usersListCmd.Flags().IntVar(&listPage, "page", 1, "Página")
	usersListCmd.Flags().IntVar(&listSize, "page-size", 20, "Tamaño de página")
	usersListCmd.Flags().StringVar(&listRole, "role", "", "Filtrar por rol")
	usersListCmd.Flags().BoolVar(&listInactive, "include-inactive", false, "Incluir cuentas desactivadas")

	setActiveCmd := func(use, short, verb string) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <user-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				status, body, err := cl.do("PATCH", "/users/"+args[0]+"/"+verb, nil)
				if err != nil {
					return err
				}
				if status/100 != 2 {
					return fmt.Errorf("%s falló: status=%d body=%s", verb, status, string(body))
				}
				cl.print(status, body)
				return nil
			},
		}
	}
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(setActiveCmd("activate", "Reactiva una cuenta (requiere users:activate)", "activate"))
	usersCmd.AddCommand(setActiveCmd("deactivate", "Desactiva una cuenta (requiere users:deactivate)", "deactivate"))

	// grupo gyms
	gymsCmd := &cobra.Command{Use: "gyms", Short: "Operaciones sobre gimnasios"}
	gymsListCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista gimnasios (requiere gyms:read)",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/gyms/", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("list falló: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	gymsCmd.AddCommand(gymsListCmd)

	root.AddCommand(pingCmd)
	root.AddCommand(usersCmd)
	root.AddCommand(gymsCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
