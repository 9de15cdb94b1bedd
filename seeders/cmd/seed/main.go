package main

import (
	"flag"
	"log"
	"time"

	"sla-mart/pkg/config"
	"sla-mart/pkg/database/postgresql"
	"sla-mart/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runCalendar := flag.Bool("calendar", false, "Наполнить производственный календарь (выходные + праздники)")
	runDemo := flag.Bool("demo", false, "Наполнить источники демо-данными для локальной разработки")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -calendar -demo)")
	fromYear := flag.Int("from-year", time.Now().Year(), "Первый год календаря")
	toYear := flag.Int("to-year", time.Now().Year()+1, "Последний год календаря")

	flag.Parse()

	if !*runCalendar && !*runDemo && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -calendar")
		log.Println("  go run ./seeders/cmd/seed/main.go -calendar -from-year 2026 -to-year 2027")
		log.Println("  go run ./seeders/cmd/seed/main.go -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runCalendar {
		seeders.SeedCalendar(dbPool, *fromYear, *toYear)
		log.Println("======================================================")
	}

	if *runAll || *runDemo {
		// Демо-события ссылаются на клиентов, порядок важен.
		seeders.SeedDemoData(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
