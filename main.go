package main

import "pom_automation/presentation/cli"

func main() {
	cli.Execute()
}
