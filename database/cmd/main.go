package main

import (
	"flag"
	"os"

	"vcard.link/configs"
	"vcard.link/configs/configsdatabase"
	"vcard.link/configs/configslog"
	"vcard.link/database"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	cfg := configs.LoadAppConfig()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	err := database.Initialize(configsdatabase.GetDB(), database.Options{
		Migrate:   *migrateFlag,
		Seed:      *seedFlag,
		SeedOwner: cfg.SeedDemoOwner,
	})
	if err != nil {
		configslog.SLog.Errorf("Veritabanı başlatma işlemi başarısız: %v", err)
		configslog.SyncLogger()
		configsdatabase.CloseDB()
		os.Exit(1)
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
