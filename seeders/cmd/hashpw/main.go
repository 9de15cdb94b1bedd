package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Утилита генерации bcrypt-хеша для переменной ADMIN_PASSWORD_HASH.
// Запуск: go run ./seeders/cmd/hashpw -password "секрет"
func main() {
	password := flag.String("password", "", "Пароль администратора")
	flag.Parse()

	if *password == "" {
		log.Fatal("Укажите пароль: go run ./seeders/cmd/hashpw -password \"секрет\"")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Ошибка генерации хеша: %v", err)
	}

	fmt.Println(string(hash))
}
