package main

import (
	"net/http"
	"time"

	"MissyCards/config"
	"MissyCards/internal/game/deck"
	"MissyCards/internal/game/manager"
	"MissyCards/internal/game/registry"
	"MissyCards/internal/utils"
	"MissyCards/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	utils.Init()

	//-------------------------------------------------------
	// 1. 初始化 Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//-------------------------------------------------------
	// 2. 初始化 Hub（必须最先启动）
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()

	//-------------------------------------------------------
	// 3. 初始化 GameManager（房间注册表 + 发牌工厂）
	//-------------------------------------------------------
	reg := registry.New()
	factory := deck.NewFactory(time.Now().UnixNano())
	gameMgr := manager.NewGameManager(reg, hub, factory, config.C.Room.CodeLength)
	gameMgr.Attach(hub)
	go gameMgr.Run()

	//-------------------------------------------------------
	// 4. WebSocket 入口
	//-------------------------------------------------------
	r.GET("/ws", websocket.ServeWS(hub, config.C.WS.SendBuffer))

	//-------------------------------------------------------
	// 5. 启动服务器
	//-------------------------------------------------------
	utils.Info.Printf("Server running on %s", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Error.Fatalf("server exited: %v", err)
	}
}
