package main

import (
	_ "shiftdesk/docs"

	"shiftdesk/cmd"
)

// @Title						Shiftdesk API
// @Description				Queue and shift management for attention rooms
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cmd.Execute()
}
