package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/cricklet/xxlchess/internal/config"
	"github.com/cricklet/xxlchess/internal/game"
	. "github.com/cricklet/xxlchess/internal/helpers"
	"github.com/cricklet/xxlchess/internal/storage"
)

type Server struct {
	config config.Config
	ledger *storage.Ledger
	// frames are only advanced by {tick:n} messages when manual
	manual bool
	logger *ZapLogger
}

var upgrader = websocket.Upgrader{}

func send(c *websocket.Conn, update UpdateToWeb) error {
	bytes, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, bytes)
}

func (s *Server) ws(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Println("upgrade:", err)
		return
	}
	defer c.Close()

	g, gameErr := game.NewFromConfig(s.config, Empty[Logger]())
	if !IsNil(gameErr) {
		s.logger.Println("new game:", gameErr)
		return
	}
	session := NewSession(g, s.ledger, nil)
	logger := s.logger.With("session", session.Name, "id", session.ID)
	session.logger = logger
	g.SetLogger(logger)
	logger.Println("connected")

	// gorilla connections allow one concurrent writer
	writes := make(chan UpdateToWeb, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case update := <-writes:
				if err := send(c, update); err != nil {
					logger.Println("websocket:", err)
				}
			case <-done:
				return
			}
		}
	}()

	writes <- session.update()

	if !s.manual {
		go func() {
			ticker := time.NewTicker(time.Second / game.FPS)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if update, changed := session.Tick(); changed {
						writes <- update
					}
					if session.Ended() {
						return
					}
				case <-done:
					return
				}
			}
		}()
	}

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.Printf("closed: %v", err)
			break
		}
		update, err2 := session.HandleMessage(message)
		if !IsNil(err2) {
			logger.Println(err2)
			continue
		}
		writes <- update
	}
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, RootDir()+"/static/index.html")
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.ws)
	router.PathPrefix("/static").Handler(
		http.StripPrefix("/static", http.FileServer(http.Dir(RootDir()+"/static"))))
	router.HandleFunc("/", s.index)
	return router
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	configPath := flag.String("config", "config.json", "game configuration")
	ledgerDir := flag.String("ledger", "", "directory of the finished game ledger, none if empty")
	manual := flag.Bool("manual", false, "advance frames only on {tick:n} messages")
	flag.Parse()

	port := 8002
	for _, arg := range flag.Args() {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		}
	}

	logger := NewProductionLogger("server", false)
	defer logger.Sync()

	c, err := config.Load(*configPath)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := &Server{config: c, manual: *manual, logger: logger}
	if *ledgerDir != "" {
		s.ledger, err = storage.Open(*ledgerDir)
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer s.ledger.Close()
	}

	logger.Println("serving at", port)
	err = Wrap(http.ListenAndServe(fmt.Sprintf(":%v", port), s.Router()))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
