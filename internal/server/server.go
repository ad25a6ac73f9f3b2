package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"facit-game/internal/config"
	"facit-game/internal/hub"
	"facit-game/internal/models"
	"facit-game/internal/repository"
	"facit-game/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Server struct {
	config      *config.Config
	hub         *hub.Hub
	roomService *services.RoomService
	gameService *services.GameService
	router      *gin.Engine
	upgrader    websocket.Upgrader
}

// ClientMessage is the inbound websocket envelope.
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func NewServer(cfg *config.Config) *Server {
	gameHub := hub.NewHub()

	// Use PostgreSQL for the question bank if DATABASE_URL is provided,
	// otherwise serve the embedded bank.
	var repo repository.QuestionRepository
	if cfg.DatabaseURL != "" {
		log.Printf("Using PostgreSQL question bank")
		pgRepo, err := repository.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		repo = pgRepo
	} else {
		log.Printf("Using embedded question bank (development mode)")
		repo = repository.NewInMemoryRepository()
	}

	var generator services.QuestionGenerator
	if cfg.OpenAIAPIKey != "" {
		log.Printf("AI question generation enabled (max %d/hour)", cfg.AIHourlyLimit)
		generator = services.NewOpenAIGenerator(cfg.OpenAIAPIKey)
	}

	questionService := services.NewQuestionService(repo, generator, services.NewRateLimiter(), cfg.AIHourlyLimit)

	defaults := models.GameSettings{
		QuestionCount:   cfg.QuestionCount,
		TimePerQuestion: cfg.TimePerQuestion,
		HintsEnabled:    cfg.HintsEnabled,
		UseAI:           cfg.UseAI && generator != nil,
		Language:        models.Language(cfg.Language),
	}

	roomService := services.NewRoomService(questionService, defaults)
	gameService := services.NewGameService(roomService, gameHub, questionService)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // Allow all origins for development
		},
	}

	router := gin.Default()

	server := &Server{
		config:      cfg,
		hub:         gameHub,
		roomService: roomService,
		gameService: gameService,
		router:      router,
		upgrader:    upgrader,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")
	{
		api.GET("/rooms/:code", s.getRoom)
	}

	s.router.GET("/ws", s.handleWebSocket)
}

func (s *Server) getRoom(c *gin.Context) {
	room := s.roomService.RoomByCode(c.Param("code"))
	if room == nil {
		c.JSON(404, gin.H{"error": "Room not found"})
		return
	}

	room.Lock()
	defer room.Unlock()
	c.JSON(200, room)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := hub.NewClient(uuid.NewString())
	s.hub.Register(client)
	log.Printf("Player connected: %s", client.ID)

	go s.readPump(conn, client)
	go s.writePump(conn, client)
}

func (s *Server) readPump(conn *websocket.Conn, client *hub.Client) {
	defer func() {
		s.handleLeave(client)
		s.hub.Unregister(client)
		conn.Close()
		log.Printf("Player disconnected: %s", client.ID)
	}()

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		s.handleMessage(client, &msg)
	}
}

func (s *Server) writePump(conn *websocket.Conn, client *hub.Client) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleMessage(client *hub.Client, msg *ClientMessage) {
	switch msg.Type {
	case "create_room":
		s.handleCreateRoom(client, msg.Data)
	case "join_room":
		s.handleJoinRoom(client, msg.Data)
	case "leave_room":
		s.handleLeave(client)
	case "update_settings":
		s.handleUpdateSettings(client, msg.Data)
	case "start_game":
		s.handleStartGame(client)
	case "submit_answer":
		s.handleSubmitAnswer(client, msg.Data)
	case "request_hint":
		s.handleRequestHint(client)
	default:
		log.Printf("Unknown message type %q from %s", msg.Type, client.ID)
	}
}

func (s *Server) sendError(client *hub.Client, message string) {
	s.hub.ToPlayer(client.ID, models.NewEvent(models.EventError, "", models.ErrorPayload{Message: message}))
}

func (s *Server) handleCreateRoom(client *hub.Client, data json.RawMessage) {
	var req struct {
		Name     string `json:"name"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.Name == "" {
		s.sendError(client, "A player name is required.")
		return
	}

	// Creating a room implicitly leaves any room the player is already in.
	s.handleLeave(client)

	room, err := s.roomService.CreateRoom(client.ID, req.Name, models.Language(req.Language))
	if err != nil {
		s.sendError(client, err.Error())
		return
	}

	s.hub.JoinRoom(client, room.ID)

	room.Lock()
	defer room.Unlock()
	s.hub.ToPlayer(client.ID, models.NewEvent(models.EventRoomCreated, room.ID, room))
}

func (s *Server) handleJoinRoom(client *hub.Client, data json.RawMessage) {
	var req struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.Code == "" || req.Name == "" {
		s.sendError(client, "A room code and player name are required.")
		return
	}

	room, player, err := s.roomService.JoinRoom(client.ID, req.Code, req.Name)
	if err != nil {
		s.sendError(client, "Room not found or game already in progress.")
		return
	}

	s.hub.JoinRoom(client, room.ID)

	room.Lock()
	s.hub.ToPlayer(client.ID, models.NewEvent(models.EventRoomJoined, room.ID, room))
	room.Unlock()

	s.hub.ToRoomExcept(room.ID, client.ID, models.NewEvent(models.EventPlayerJoined, room.ID, player))
}

func (s *Server) handleLeave(client *hub.Client) {
	// Mid-game leavers are scored as forced-incorrect before membership
	// changes hands.
	s.gameService.HandleDisconnect(client.ID)

	room, deleted := s.roomService.LeaveRoom(client.ID)
	s.hub.LeaveRoom(client)
	if room == nil || deleted {
		return
	}

	s.hub.ToRoom(room.ID, models.NewEvent(models.EventPlayerLeft, room.ID, models.PlayerLeftPayload{PlayerID: client.ID}))
}

func (s *Server) handleUpdateSettings(client *hub.Client, data json.RawMessage) {
	var settings models.GameSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.sendError(client, "Invalid settings.")
		return
	}

	room, err := s.roomService.UpdateSettings(client.ID, settings)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	s.hub.ToRoom(room.ID, models.NewEvent(models.EventSettingsUpdated, room.ID, room))
}

func (s *Server) handleStartGame(client *hub.Client) {
	if err := s.gameService.StartGame(client.ID); err != nil {
		s.sendError(client, err.Error())
	}
}

func (s *Server) handleSubmitAnswer(client *hub.Client, data json.RawMessage) {
	var req struct {
		Answer bool `json:"answer"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	s.gameService.SubmitAnswer(client.ID, req.Answer)
}

func (s *Server) handleRequestHint(client *hub.Client) {
	hint, multiplier, ok := s.gameService.RequestHint(client.ID)
	if !ok {
		s.hub.ToPlayer(client.ID, models.NewEvent(models.EventHintNone, "", nil))
		return
	}
	s.hub.ToPlayer(client.ID, models.NewEvent(models.EventHintRevealed, "", models.HintPayload{
		Hint:            hint,
		ScoreMultiplier: multiplier,
	}))
}

func (s *Server) Start() error {
	return s.router.Run(":" + s.config.Port)
}
