// cmd/main.go
package main

import (
	"go-publisher-api/app"
)

// @title           Publisher Back-Office API
// @version         1.0
// @description     Back-office API for a printing/publishing company: accounts, ledgers, and ledger record queries.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
