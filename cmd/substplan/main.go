package main

import (
	"substplan/cmd/substplan/commands"
	"substplan/pkg/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
