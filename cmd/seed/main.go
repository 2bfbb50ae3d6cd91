// seed crea el usuario administrador inicial y un catálogo de demostración
// (categorías, productos y servicios). Es idempotente: no duplica filas en
// ejecuciones repetidas.
//
// Uso: go run ./cmd/seed
// Variables: las mismas de la API (DB_*), más ADMIN_EMAIL y ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/casabella/casa-bella-api/internal/infrastructure/postgres"
	"github.com/casabella/casa-bella-api/pkg/config"
)

type demoProduct struct {
	name     string
	ptype    string
	category string
	price    string
	stock    int
	minStock int
}

type demoService struct {
	name     string
	price    string
	duration int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	adminEmail := envOr("ADMIN_EMAIL", "admin@casabella.local")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		fail("ADMIN_PASSWORD es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear password: %v", err)
	}

	now := time.Now()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES ($1, 'Administración', $2, $3, 'admin', $4)
		ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), adminEmail, string(hash), now)
	if err != nil {
		fail("crear admin: %v", err)
	}
	fmt.Printf("Admin listo: %s\n", adminEmail)

	categories := []string{"Maquillaje", "Cuidado de piel", "Joyería"}
	categoryIDs := make(map[string]string)
	for _, name := range categories {
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name, description)
			SELECT $1, $2, NULL
			WHERE NOT EXISTS (SELECT 1 FROM categories WHERE name = $2)`,
			uuid.New().String(), name)
		if err != nil {
			fail("crear categoría %s: %v", name, err)
		}
		var id string
		if err := pool.QueryRow(ctx, `SELECT id FROM categories WHERE name = $1`, name).Scan(&id); err != nil {
			fail("leer categoría %s: %v", name, err)
		}
		categoryIDs[name] = id
	}

	products := []demoProduct{
		{"Labial mate rojo", "cosmético", "Maquillaje", "189.00", 40, 10},
		{"Base líquida tono medio", "cosmético", "Maquillaje", "349.50", 25, 8},
		{"Sérum facial vitamina C", "cosmético", "Cuidado de piel", "520.00", 15, 5},
		{"Crema hidratante de noche", "cosmético", "Cuidado de piel", "410.00", 20, 5},
		{"Aretes de plata 925", "joya", "Joyería", "780.00", 10, 3},
		{"Collar de perlas cultivadas", "joya", "Joyería", "1450.00", 6, 2},
	}
	for _, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			fail("precio de %s: %v", p.name, err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO products (id, category_id, name, description, type, price, stock, stock_minimum, status, created_at, updated_at)
			SELECT $1, $2, $3, '', $4, $5, $6, $7, 'activo', $8, $8
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $3)`,
			uuid.New().String(), categoryIDs[p.category], p.name, p.ptype, price, p.stock, p.minStock, now)
		if err != nil {
			fail("crear producto %s: %v", p.name, err)
		}
	}
	fmt.Printf("Productos: %d\n", len(products))

	services := []demoService{
		{"Corte y peinado", "350.00", 60},
		{"Manicure spa", "280.00", 45},
		{"Maquillaje profesional", "650.00", 90},
		{"Tratamiento facial profundo", "820.00", 75},
	}
	for _, s := range services {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			fail("precio de %s: %v", s.name, err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO services (id, name, description, price, duration_minutes, created_at, updated_at)
			SELECT $1, $2, '', $3, $4, $5, $5
			WHERE NOT EXISTS (SELECT 1 FROM services WHERE name = $2)`,
			uuid.New().String(), s.name, price, s.duration, now)
		if err != nil {
			fail("crear servicio %s: %v", s.name, err)
		}
	}
	fmt.Printf("Servicios: %d\n", len(services))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
