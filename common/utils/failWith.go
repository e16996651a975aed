package utils

import (
	"fmt"
	"os"

	"github.com/ttacon/chalk"
)

func FailWith(err error) {
	fmt.Println("")
	fmt.Println(chalk.Red.Color("❌  An error occurred."))
	fmt.Println("")
	fmt.Printf("%+v\n", err)
	fmt.Println("")

	os.Exit(1)
}

func WarnWith(err error) {
	fmt.Println("")
	fmt.Println(chalk.Yellow.Color("⚠️  Warning"))
	fmt.Println("")
	fmt.Println(err.Error())
	fmt.Println("")
}
