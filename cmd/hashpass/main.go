// Command hashpass prints the bcrypt hash to use as ADMIN_PASS_HASH with AUTH_MODE=local.
// The password is read from the first line of stdin.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/auth"
)

var errShortPassword = errors.New("password must have at least 6 characters")

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		logrus.Fatalf("hashpass: %v", err)
	}
}

func run(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if len(password) < 6 {
		return errShortPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
