package database

import (
	"fmt"
	"log"

	"fiber-tracking/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

func getDSNAndDialector(dbName string) (string, gorm.Dialector) {
	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, dbName, config.DBPort)
		return dsn, postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, mysql.Open(dsn)
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, sqlserver.Open(dsn)
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", config.DBDriver)
		return "", nil
	}
}

// OpenDatabaseConnection opens the application database.
// TranslateError is on so duplicate-key violations surface as
// gorm.ErrDuplicatedKey across all three drivers.
func OpenDatabaseConnection(dbName string) (*gorm.DB, error) {
	_, dialector := getDSNAndDialector(dbName)
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

// EnsureDatabaseExists connects without a database name and creates
// the schema when missing.
func EnsureDatabaseExists(dbName string) {
	var db *gorm.DB
	var err error

	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, config.DBPort)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}
		var count int64
		db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", dbName).Scan(&count)
		if count == 0 {
			if err := db.Exec("CREATE DATABASE " + dbName).Error; err != nil {
				log.Fatalf("Failed to create database %s: %v", dbName, err)
			}
		}
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to mysql: %v", err)
		}
		if err := db.Exec("CREATE DATABASE IF NOT EXISTS " + dbName).Error; err != nil {
			log.Fatalf("Failed to create database %s: %v", dbName, err)
		}
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=master",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort)
		db, err = gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to sqlserver: %v", err)
		}
		sql := fmt.Sprintf("IF NOT EXISTS (SELECT name FROM sys.databases WHERE name = '%s') CREATE DATABASE [%s]", dbName, dbName)
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Failed to create database %s: %v", dbName, err)
		}
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", config.DBDriver)
	}
}
