package graphql

import "github.com/graphql-go/graphql"

// Tipos GraphQL del edge. Los resolvers por defecto leen los json tags
// de los structs api.User / api.Gym, así que los nombres coinciden.

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"email":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"firstName":     &graphql.Field{Type: graphql.String},
		"lastName":      &graphql.Field{Type: graphql.String},
		"phone":         &graphql.Field{Type: graphql.String},
		"role":          &graphql.Field{Type: graphql.String},
		"gymId":         &graphql.Field{Type: graphql.ID},
		"gymLocationId": &graphql.Field{Type: graphql.ID},
		"isActive":      &graphql.Field{Type: graphql.Boolean},
		"createdAt":     &graphql.Field{Type: graphql.DateTime},
		"updatedAt":     &graphql.Field{Type: graphql.DateTime},
	},
})

var userListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserList",
	Fields: graphql.Fields{
		"users":    &graphql.Field{Type: graphql.NewList(userType)},
		"total":    &graphql.Field{Type: graphql.Int},
		"page":     &graphql.Field{Type: graphql.Int},
		"pageSize": &graphql.Field{Type: graphql.Int},
	},
})

var gymType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Gym",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":     &graphql.Field{Type: graphql.String},
		"phone":     &graphql.Field{Type: graphql.String},
		"address":   &graphql.Field{Type: graphql.String},
		"city":      &graphql.Field{Type: graphql.String},
		"country":   &graphql.Field{Type: graphql.String},
		"isActive":  &graphql.Field{Type: graphql.Boolean},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var gymListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "GymList",
	Fields: graphql.Fields{
		"gyms":     &graphql.Field{Type: graphql.NewList(gymType)},
		"total":    &graphql.Field{Type: graphql.Int},
		"page":     &graphql.Field{Type: graphql.Int},
		"pageSize": &graphql.Field{Type: graphql.Int},
	},
})
