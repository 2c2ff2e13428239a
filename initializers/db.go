package initializers

import (
	"time"

	"ats-backend/config"
	"ats-backend/db"
)

func InitDBConnection() {
	dbConf := config.Conf.Database
	err := db.Connect(db.Options{
		Host:            dbConf.Host,
		Port:            dbConf.Port,
		Name:            dbConf.Name,
		User:            dbConf.User,
		Password:        dbConf.Password,
		MaxOpenConns:    dbConf.MaxOpenConns,
		MaxIdleConns:    dbConf.MaxIdleConns,
		ConnMaxLifetime: time.Duration(dbConf.ConnMaxLifetimeMin) * time.Minute,
		DebugMode:       *dbConf.DebugMode,
		Migrate:         *dbConf.MigrateOnStart,
	})
	if err != nil {
		panic(err.Error())
	}
}
