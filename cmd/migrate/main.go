package main

import (
	"database/sql"
	"log"
	"os"

	_ "modernc.org/sqlite"
)

func main() {
	log.Println("🔄 Создание базы данных...")

	os.MkdirAll("data", 0755)

	db, err := sql.Open("sqlite", "./data/taskbot.db")
	if err != nil {
		log.Fatal("❌ Ошибка открытия БД:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("❌ Ошибка подключения:", err)
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks (user_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal("❌ Ошибка создания схемы:", err)
		}
	}

	log.Println("✅ Схема создана")
	log.Println("📁 База данных: data/taskbot.db")
}
