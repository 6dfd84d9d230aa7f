package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/uac/cafeteria-api/cmd/app"
)

// @title          Cafeteria API
// @version        1.0
// @description    Prepaid cafeteria accounts for students: menus, meal tickets and balance management.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
