package main

import (
	"fmt"
	"os"
	"strings"

	"inkwell/service"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		os.Exit(service.HandleCommand(nil))
	}

	switch strings.ToLower(os.Args[1]) {
	case "version":
		fmt.Printf("inkwell version %s\n", cliVersion)
	default:
		os.Exit(service.HandleCommand(os.Args[1:]))
	}
}
