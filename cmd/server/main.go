package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sharetube/livepage/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
	usage        string
}

var (
	serverDomain = configVar[string]{
		envKey:       "LIVE_SERVER_DOMAIN",
		flagKey:      "server-domain",
		defaultValue: "",
		usage:        "microCMS service domain",
	}
	apiKey = configVar[string]{
		envKey:       "LIVE_API_KEY",
		flagKey:      "api-key",
		defaultValue: "",
		usage:        "microCMS API key",
	}
	endPoint = configVar[string]{
		envKey:       "LIVE_END_POINT",
		flagKey:      "end-point",
		defaultValue: "",
		usage:        "microCMS content endpoint",
	}
	archiveMode = configVar[bool]{
		envKey:       "LIVE_ARCHIVE_MODE",
		flagKey:      "archive-mode",
		defaultValue: false,
		usage:        "Embed the player with default controls",
	}
	apiTime = configVar[int]{
		envKey:       "LIVE_API_TIME",
		flagKey:      "api-time",
		defaultValue: 5000,
		usage:        "Polling interval in milliseconds",
	}
	youtubeWidth = configVar[int]{
		envKey:       "LIVE_YOUTUBE_WIDTH",
		flagKey:      "youtube-width",
		defaultValue: 1280,
		usage:        "Player width",
	}
	youtubeHeight = configVar[int]{
		envKey:       "LIVE_YOUTUBE_HEIGHT",
		flagKey:      "youtube-height",
		defaultValue: 720,
		usage:        "Player height",
	}
	cmsBaseURL = configVar[string]{
		envKey:       "LIVE_CMS_BASE_URL",
		flagKey:      "cms-base-url",
		defaultValue: "",
		usage:        "Override of the microCMS API root",
	}
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 80,
		usage:        "Server port",
	}
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
		usage:        "Server host",
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
		usage:        "Logging level",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
		usage:        "Redis port",
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "",
		usage:        "Redis host, snapshots are kept in memory when empty",
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
		usage:        "Redis password",
	}
	snapshotTTL = configVar[int]{
		envKey:       "SNAPSHOT_TTL",
		flagKey:      "snapshot-ttl",
		defaultValue: 86400,
		usage:        "Page snapshot lifetime in seconds",
	}
)

func bindString(v configVar[string]) {
	pflag.String(v.flagKey, v.defaultValue, v.usage)
	viper.BindEnv(v.flagKey, v.envKey)
	viper.SetDefault(v.flagKey, v.defaultValue)
}

func bindInt(v configVar[int]) {
	pflag.Int(v.flagKey, v.defaultValue, v.usage)
	viper.BindEnv(v.flagKey, v.envKey)
	viper.SetDefault(v.flagKey, v.defaultValue)
}

func bindBool(v configVar[bool]) {
	pflag.Bool(v.flagKey, v.defaultValue, v.usage)
	viper.BindEnv(v.flagKey, v.envKey)
	viper.SetDefault(v.flagKey, v.defaultValue)
}

func loadAppConfig() *app.AppConfig {
	for _, v := range []configVar[string]{serverDomain, apiKey, endPoint, cmsBaseURL, host, logLevel, redisHost, redisPassword} {
		bindString(v)
	}
	for _, v := range []configVar[int]{apiTime, youtubeWidth, youtubeHeight, port, redisPort, snapshotTTL} {
		bindInt(v)
	}
	bindBool(archiveMode)
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	config := &app.AppConfig{
		ServerDomain:  viper.GetString(serverDomain.flagKey),
		APIKey:        viper.GetString(apiKey.flagKey),
		Endpoint:      viper.GetString(endPoint.flagKey),
		ArchiveMode:   viper.GetBool(archiveMode.flagKey),
		APITime:       viper.GetInt(apiTime.flagKey),
		YoutubeWidth:  viper.GetInt(youtubeWidth.flagKey),
		YoutubeHeight: viper.GetInt(youtubeHeight.flagKey),
		CMSBaseURL:    viper.GetString(cmsBaseURL.flagKey),
		Host:          viper.GetString(host.flagKey),
		Port:          viper.GetInt(port.flagKey),
		LogLevel:      viper.GetString(logLevel.flagKey),
		RedisPort:     viper.GetInt(redisPort.flagKey),
		RedisHost:     viper.GetString(redisHost.flagKey),
		RedisPassword: viper.GetString(redisPassword.flagKey),
		SnapshotTTL:   viper.GetInt(snapshotTTL.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
