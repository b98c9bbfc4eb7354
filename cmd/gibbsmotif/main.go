// cmd/gibbsmotif/main.go
package main

import (
	"gibbsmotif/internal/app"
	"gibbsmotif/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
