package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/vacantvectors/postcraft/internal/config"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Load()

	fmt.Println("Connecting to postgres:", cfg.DatabaseURL)
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("Error creating pool: %v\n", err)
		return
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		fmt.Printf("Error pinging postgres: %v\n", err)
		return
	}

	var result int
	if err := pool.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
		fmt.Printf("Error querying: %v\n", err)
		return
	}
	fmt.Printf("Postgres OK (SELECT 1 = %d)\n", result)

	fmt.Println("Connecting to redis:", cfg.RedisURL)
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		fmt.Printf("Error parsing redis URL: %v\n", err)
		return
	}
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Printf("Error pinging redis: %v\n", err)
		return
	}
	fmt.Println("Redis OK")

	fmt.Println("Connecting to NATS:", cfg.NATSURL)
	nc, err := nats.Connect(cfg.NATSURL, nats.Timeout(5*time.Second))
	if err != nil {
		fmt.Printf("Error connecting to NATS: %v\n", err)
		return
	}
	defer nc.Close()
	fmt.Println("NATS OK")

	fmt.Println("All connections successful!")
}
