package buildCFG

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"

	"github.com/KantapongChamnankit/Booking/internal/service"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type SupabaseConfig struct {
	URL   string
	Key   string
	Table string
}

type RabbitConfig struct {
	Enabled  bool
	Url      string
	Exchange string
	Queue    string
}

type SMSConfig struct {
	Enabled bool
	Token   string
	Sender  string
	BaseURL string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}

	origins := splitList(cfg.GetString("server.allowed_origins"))
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	return ServerConfig{Port: port, AllowedOrigins: origins}
}

func BuildSupabaseConfig(cfg *config.Config, log *zerolog.Logger) (SupabaseConfig, error) {
	url := os.Getenv("SUPABASE_URL")
	key := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if url == "" || key == "" {
		return SupabaseConfig{}, fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY must be set")
	}

	table := cfg.GetString("supabase.table")
	if table == "" {
		table = "bookings"
	}

	return SupabaseConfig{URL: url, Key: key, Table: table}, nil
}

func BuildBookingConfig(cfg *config.Config, log *zerolog.Logger) service.Config {
	machines := splitList(cfg.GetString("booking.machines"))
	if len(machines) == 0 {
		machines = []string{"WASH-01", "WASH-02", "DRY-01", "DRY-02"}
		log.Warn().Msg("booking.machines not set, using default machine set")
	}

	return service.Config{
		Machines:    machines,
		OffsetHours: intOrDefault(cfg.GetString("booking.timezone_offset_hours"), 7),
		Grace:       time.Duration(intOrDefault(cfg.GetString("booking.grace_minutes"), 30)) * time.Minute,
		SessionTTL:  time.Duration(intOrDefault(cfg.GetString("booking.session_ttl_days"), 30)) * 24 * time.Hour,
	}
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	rc := RabbitConfig{
		Enabled:  boolValue(cfg.GetString("rabbit.enabled")),
		Url:      cfg.GetString("rabbit.url"),
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if !rc.Enabled {
		return rc, nil
	}
	if rc.Url == "" || rc.Exchange == "" || rc.Queue == "" {
		return rc, fmt.Errorf("rabbit.url, rabbit.exchange and rabbit.queue must be set when rabbit.enabled is true")
	}
	return rc, nil
}

func BuildSMSConfig(cfg *config.Config, log *zerolog.Logger) SMSConfig {
	sc := SMSConfig{
		Enabled: boolValue(cfg.GetString("sms.enabled")),
		Token:   os.Getenv("THSMS_API_TOKEN"),
		Sender:  cfg.GetString("sms.sender"),
		BaseURL: cfg.GetString("sms.base_url"),
	}
	if sc.Enabled && sc.Token == "" {
		log.Warn().Msg("sms.enabled is true but THSMS_API_TOKEN is empty, SMS notifications disabled")
		sc.Enabled = false
	}
	return sc
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func intOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func boolValue(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
