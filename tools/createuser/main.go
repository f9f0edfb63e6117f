// Command createuser seeds an account directly into the users database,
// typically to provision the first admin. It applies the same schema and
// credential format as the server, so the two stay interchangeable.
//
// Usage:
//
//	createuser [-db data/board.db] [-roles admin,user] [-migrations migration] username password
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"topic-board/helper"
	"topic-board/models"
	"topic-board/repositories"
)

func main() {
	dbPath := flag.String("db", "data/board.db", "path to the users database")
	roles := flag.String("roles", "admin", "comma-separated roles (e.g. admin,user)")
	migrations := flag.String("migrations", "migration", "directory holding the schema files")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: createuser [flags] username password")
		flag.PrintDefaults()
		os.Exit(1)
	}
	username, password := flag.Arg(0), flag.Arg(1)

	if dir := filepath.Dir(*dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, "error: could not create database directory:", err)
			os.Exit(1)
		}
	}

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: could not open database:", err)
		os.Exit(1)
	}

	if err := repositories.EnsureSchema(db, *migrations); err != nil {
		fmt.Fprintln(os.Stderr, "error: could not apply schema:", err)
		os.Exit(1)
	}

	roleSet := models.RoleSet(strings.Split(*roles, ","))
	repo := repositories.NewUserRepository(db, helper.NewPasswordManager())

	id, err := repo.CreateUser(username, password, roleSet)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			fmt.Fprintln(os.Stderr, "error: could not create user:", err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println("created user id:", id)
}
