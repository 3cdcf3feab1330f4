package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Room struct {
		CodeLength int
	}
	WS struct {
		SendBuffer int
	}
}

var C Config

func Load() {
	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("room.codelength", 5)
	viper.SetDefault("ws.sendbuffer", 32)

	viper.SetConfigFile("config/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		// 无配置文件时用默认值起服（容器里常见）
		log.Printf("config file not loaded, using defaults: %v", err)
	}
	if err := viper.Unmarshal(&C); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
}
