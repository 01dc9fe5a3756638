// Package config assembles the settings every command reads from the
// environment (after an optional .env has been loaded).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	FFmpegPath  string
	FFprobePath string
	TitleFont   string
	WorkRoot    string

	YouTube   YouTube
	WordPress WordPress
	LinkedIn  LinkedIn
	OpenAI    OpenAI
	Gemini    Gemini
	S3        S3
}

type YouTube struct {
	ClientSecrets   string
	TokenFile       string
	UploadTokenFile string
}

type WordPress struct {
	URL      string
	User     string
	Password string
}

type LinkedIn struct {
	CredentialsFile string
	APIBase         string
	RedirectURL     string
}

type OpenAI struct {
	APIKey       string
	BaseURL      string
	AllowedHosts []string
}

type Gemini struct {
	APIKey string
}

type S3 struct {
	Bucket       string
	Region       string
	Profile      string
	Prefix       string
	Endpoint     string
	UsePathStyle bool
}

// FromEnv reads the configuration through getenv, normally os.Getenv.
func FromEnv(getenv func(string) string) Config {
	def := func(k, d string) string { return getenvDefault(getenv, k, d) }
	return Config{
		FFmpegPath:  def("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: def("FFPROBE_PATH", "ffprobe"),
		TitleFont:   getenv("PUBKIT_TITLE_FONT"),
		WorkRoot:    def("PUBKIT_WORK_ROOT", "."),
		YouTube: YouTube{
			ClientSecrets:   def("YOUTUBE_CLIENT_SECRETS", "client_secret.json"),
			TokenFile:       def("YOUTUBE_TOKEN_FILE", "credentials_update.json"),
			UploadTokenFile: def("YOUTUBE_UPLOAD_TOKEN_FILE", "credentials.json"),
		},
		WordPress: WordPress{
			URL:      strings.TrimRight(getenv("WP_URL"), "/"),
			User:     getenv("WP_USER"),
			Password: getenv("WP_PASSWORD"),
		},
		LinkedIn: LinkedIn{
			CredentialsFile: expandHome(def("LINKEDIN_CREDENTIALS", "~/.linkedin_credentials.json")),
			APIBase:         def("LINKEDIN_API_BASE", "https://api.linkedin.com"),
			RedirectURL:     def("LINKEDIN_REDIRECT_URL", "http://localhost:8000/callback"),
		},
		OpenAI: OpenAI{
			APIKey:       getenv("OPENAI_API_KEY"),
			BaseURL:      getenv("OPENAI_BASE_URL"),
			AllowedHosts: splitList(getenv("OPENAI_ALLOWED_HOSTS")),
		},
		Gemini: Gemini{
			APIKey: firstNonEmpty(getenv("GEMINI_API_KEY"), getenv("GOOGLE_API_KEY")),
		},
		S3: S3{
			Bucket:       getenv("S3_BUCKET"),
			Region:       getenv("S3_REGION"),
			Profile:      getenv("S3_PROFILE"),
			Prefix:       def("S3_PREFIX", "shorts"),
			Endpoint:     getenv("S3_ENDPOINT"),
			UsePathStyle: parseBool(getenv("S3_USE_PATH_STYLE")),
		},
	}
}

func (w WordPress) Validate() error {
	var missing []string
	if w.URL == "" {
		missing = append(missing, "WP_URL")
	}
	if w.User == "" {
		missing = append(missing, "WP_USER")
	}
	if w.Password == "" {
		missing = append(missing, "WP_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing WordPress credentials: %s", strings.Join(missing, ", "))
	}
	u, err := url.Parse(w.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid WP_URL %q: absolute http(s) URL is required", w.URL)
	}
	return nil
}

func (o OpenAI) Validate() error {
	if o.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required (set it in .env)")
	}
	return nil
}

func (g Gemini) Validate() error {
	if g.APIKey == "" {
		return errors.New("GEMINI_API_KEY is required (set it in .env)")
	}
	return nil
}

func (s S3) Validate() error {
	if s.Bucket == "" {
		return errors.New("S3 bucket is required (--bucket or S3_BUCKET)")
	}
	return nil
}

func getenvDefault(getenv func(string) string, k, def string) string {
	v := getenv(k)
	if v == "" {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
