package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	// Подключаемся к MySQL без указания базы
	dsn := "root:root@tcp(127.0.0.1:3306)/"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Ошибка подключения к MySQL: %v", err)
	}
	defer db.Close()

	// Удаляем базу, если есть
	_, err = db.Exec("DROP DATABASE IF EXISTS cscbatch")
	if err != nil {
		log.Fatalf("Ошибка удаления базы: %v", err)
	}
	fmt.Println("База данных cscbatch удалена (если была)")

	// Создаём базу
	_, err = db.Exec("CREATE DATABASE cscbatch CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci")
	if err != nil {
		log.Fatalf("Ошибка создания базы: %v", err)
	}
	fmt.Println("База данных cscbatch создана")

	// Подключаемся к новой базе
	db2, err := sql.Open("mysql", dsn+"cscbatch")
	if err != nil {
		log.Fatalf("Ошибка подключения к новой базе: %v", err)
	}
	defer db2.Close()

	// Создаём таблицу результатов конвертации
	resultsSQL := `CREATE TABLE conversion_results (
		id INT AUTO_INCREMENT PRIMARY KEY,
		batch_id VARCHAR(36) NOT NULL,
		input_path VARCHAR(255) NOT NULL,
		output_path VARCHAR(255) NOT NULL,
		status VARCHAR(16) NOT NULL,
		failed_phase VARCHAR(16),
		error_text TEXT,
		open_ms INT,
		recognize_ms INT,
		save_ms INT,
		total_ms INT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	_, err = db2.Exec(resultsSQL)
	if err != nil {
		log.Fatalf("Ошибка создания таблицы conversion_results: %v", err)
	}
	fmt.Println("Таблица conversion_results создана")

	// Создаём таблицу итогов батчей
	runsSQL := `CREATE TABLE batch_runs (
		id INT AUTO_INCREMENT PRIMARY KEY,
		batch_id VARCHAR(36) NOT NULL UNIQUE,
		succeeded INT NOT NULL,
		failed INT NOT NULL,
		skipped INT NOT NULL,
		total_ms INT NOT NULL,
		throughput_per_min DECIMAL(10,2),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	_, err = db2.Exec(runsSQL)
	if err != nil {
		log.Fatalf("Ошибка создания таблицы batch_runs: %v", err)
	}
	fmt.Println("Таблица batch_runs создана")
}
