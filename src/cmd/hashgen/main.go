// Command hashgen hashes an admin password for use as ADMIN_PASSWORD_HASH.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

func main() {
	fmt.Print("Enter the password you want to hash: ")

	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}

	password = strings.TrimRight(password, "\r\n")
	if strings.TrimSpace(password) == "" {
		fmt.Fprintln(os.Stderr, "Password cannot be empty")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nPassword hashed successfully!")
	fmt.Println("Copy this line into your environment:")
	fmt.Printf("\nADMIN_PASSWORD_HASH=%s\n", string(hash))
	fmt.Println("\nMake sure to remove any plain ADMIN_PASSWORD setting.")
}
