package utils

import (
	"fmt"
	"log"

	"github.com/ttacon/chalk"
)

// Check panics on err; %+v surfaces the stack trace when err carries one.
func Check(err error, msg string) {
	if err != nil {
		fmt.Print(chalk.Red)
		log.Print(msg, chalk.Reset)
		log.Panicf("%+v", err)
	}
}

func Assert(ok bool, msg string) {
	if !ok {
		fmt.Print(chalk.Red)
		log.Print(msg, chalk.Reset)
		log.Panic()
	}
}
