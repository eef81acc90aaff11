package main

import (
	"fmt"
	"os"

	"github.com/0xjbushell/lets-encrypt-azure/cmd/renew/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
