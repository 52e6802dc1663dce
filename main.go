/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/oaktires/accounts-api/cmd"

func main() {
	cmd.Execute()
}
