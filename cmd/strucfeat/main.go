// cmd/strucfeat/main.go
package main

import (
	"strucfeat/internal/app"
	"strucfeat/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
