package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort     string
	AppEnv      string
	MongoURI    string
	MongoDBName string

	JWTSecret string

	FirebaseAPIKey      string
	FirebaseCredsBase64 string
	FirebaseCredsFile   string

	RedisAddr     string
	RedisPassword string

	// Minimum lead time, in hours, before a reservation can still be modified.
	HoursBeforeUpdate int

	CORSOrigins string
}

func Load() Config {
	hours, _ := strconv.Atoi(get("HOURS_BEFORE_UPDATE", "2"))
	return Config{
		AppPort:     get("APP_PORT", "8080"),
		AppEnv:      get("APP_ENV", "development"),
		MongoURI:    firstOf("MONGODB_URI", "MONGO_URI", "MONGO_URL", "URI"),
		MongoDBName: firstOf("MONGO_DB_NAME", "DATABASE_NAME", "DB_NAME"),

		JWTSecret: must("JWT_SECRET"),

		FirebaseAPIKey:      get("FIREBASE_API_KEY", ""),
		FirebaseCredsBase64: get("FIREBASE_CREDENTIALS_BASE64", ""),
		FirebaseCredsFile:   get("FIREBASE_CREDENTIALS_FILE", "secrets/taskfixer-secrets.json"),

		RedisAddr:     get("REDIS_ADDR", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),

		HoursBeforeUpdate: hours,

		CORSOrigins: get("CORS_ORIGINS", "*"),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}

// firstOf reads the first non-empty variable. Deployments have used several
// names for the Mongo settings over time.
func firstOf(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	panic("missing env: " + keys[0])
}
