package models

import (
	"log"
	"strings"
	"time"

	"github.com/SherClockHolmes/webpush-go"
)

// Config holds all the application config values.
// Not really a classical model since not saved into DB.
type Config struct {
	AdminEmail        string        // ADMINEMAIL
	AdminKey          string        // ADMINKEY
	Debug             bool          // DEBUG
	Port              int           // PORT
	Host              string        // HOST
	DbType            string        // DBTYPE
	DbDSN             string        // DBDSN
	MaxBodySize       int64         // not documented
	OriginalIPHeader  string        // ORIGINALIPHEADER
	SSLMode           string        // SSLMODE
	SSLAutoCertsDir   string        // SSLAUTOCERTSDIR
	SSLCustomCertPath string        // SSLCUSTOMCERTPATH
	SSLCustomKeyPath  string        // SSLCUSTOMKEYPATH
	VapidPublicKey    string        // VAPIDPUBLICKEY
	VapidPrivateKey   string        // VAPIDPRIVATEKEY
	APNSAuthKeyPath   string        // APNSAUTHKEYPATH
	APNSKeyID         string        // APNSKEYID
	APNSTeamID        string        // APNSTEAMID
	APNSTopic         string        // APNSTOPIC
	APNSProduction    bool          // APNSPRODUCTION
	Domain            string        // DOMAIN
	BroadcastInterval time.Duration // BROADCASTINTERVAL, 0 disables the internal scheduler
}

func (config *Config) New() Config {
	var defaultConfig = Config{
		DbType:            "sqlite",
		DbDSN:             "/tmp/phrasepush.db",
		Debug:             false,
		Port:              8080,
		Host:              "127.0.0.1",
		MaxBodySize:       8192, // big enough for any push subscription object
		SSLMode:           "off",
		SSLAutoCertsDir:   "/tmp",
		SSLCustomCertPath: "/ssl/cert.pem",
		SSLCustomKeyPath:  "/ssl/key.pem",
		APNSProduction:    true,
		BroadcastInterval: 0,
	}
	return defaultConfig
}

func (config *Config) Verify() {
	if config.AdminKey == "" {
		log.Fatal("ADMINKEY is not set. The /admin endpoints require a shared secret.")
	}
	if config.AdminEmail == "" {
		log.Fatal("ADMINEMAIL must be set to a valid email address, it is sent to the push services as the VAPID subscriber.")
	}
	if config.VapidPrivateKey == "" || config.VapidPublicKey == "" {
		log.Printf("FATAL: VAPIDPRIVATEKEY and VAPIDPUBLICKEY must be defined and valid")
		log.Printf("If you have never defined them, here are some fresh values generated just for you.")
		if privateKey, publicKey, err := webpush.GenerateVAPIDKeys(); err == nil {
			log.Printf("VAPIDPUBLICKEY=\"%s\"", publicKey)
			log.Printf("VAPIDPRIVATEKEY=\"%s\"", privateKey)
		}
		log.Fatal("Add them to the environment variables. VAPIDPRIVATEKEY is sensitive, keep it secret.")
	}
	config.SSLMode = strings.ToLower(config.SSLMode)
	if config.SSLMode != "off" && config.SSLMode != "auto" && config.SSLMode != "custom" && config.SSLMode != "proxy" {
		log.Fatal("SSLMODE must be one of off, auto, custom, proxy")
	}
	if config.HasAPNS() {
		if config.APNSTopic == "" {
			log.Fatal("APNSTOPIC must be set to the app bundle identifier when APNs credentials are configured")
		}
	} else {
		log.Printf("APNs credentials are not fully configured, sending to iOS devices is disabled")
	}
	if config.BroadcastInterval > 0 && config.BroadcastInterval < time.Minute {
		log.Fatal("BROADCASTINTERVAL must be at least 1m, or 0 to rely on an external scheduler")
	}
}

// HasAPNS reports whether enough credentials are configured to create the APNs client.
func (config *Config) HasAPNS() bool {
	return config.APNSAuthKeyPath != "" && config.APNSKeyID != "" && config.APNSTeamID != ""
}
