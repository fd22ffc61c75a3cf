package main

// @title contas API
// @version 1.0
// @description Bills, installment plans and bank account ledgers for a single owner.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	execute()
}
