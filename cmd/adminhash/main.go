// Command adminhash prints the bcrypt hash of an admin code for the kiosk's
// admin_code_hash setting. The code is read without echo, twice.
package main

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/snackkiosk/internal/common"
	"github.com/dmitrijs2005/snackkiosk/internal/cryptox"
)

func readCode(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	code, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return code, err
}

func main() {
	code, err := readCode("Admin code: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read code: %v\n", err)
		os.Exit(1)
	}
	again, err := readCode("Repeat: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read code: %v\n", err)
		os.Exit(1)
	}
	defer common.WipeByteArray(code)
	defer common.WipeByteArray(again)
	if !bytes.Equal(code, again) {
		fmt.Fprintln(os.Stderr, "codes do not match")
		os.Exit(1)
	}

	hash, err := cryptox.HashAdminCode(string(code))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
