package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand/v2"
	"time"

	"wallpapers/internal/config"
	"wallpapers/internal/database"
	"wallpapers/internal/domain"
	"wallpapers/internal/modules/media"
	"wallpapers/internal/modules/wallpaper"
	"wallpapers/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var titles = []string{
	"Northern lights", "Desert dunes", "Foggy forest", "City at night", "Mountain lake",
	"Autumn road", "Ocean waves", "Neon alley", "Snowy peaks", "Lavender field",
	"Starry sky", "Tropical beach", "Canyon sunset", "Rainy window", "Old lighthouse",
}

var tagPool = []string{"nature", "night", "sunset", "sea", "mountains", "city", "forest", "minimal", "space", "winter"}

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{"favorites", "wallpaper_tags", "tags", "wallpapers", "images", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("cleanup %s failed: %v", table, err)
		}
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	wallpapers := repository.NewWallpaperRepository(db)
	favorites := repository.NewFavoriteRepository(db)
	images := media.NewService(media.NewRepository(db), cfg.UploadDir, cfg.StaticURLBase, cfg.MaxUploadBytes)

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := newUser(ctx, users, "admin@wallpapers.local", "admin123", "Moderator")
	if err := users.SetRank(ctx, admin.ID, 2); err != nil {
		log.Fatalf("set admin rank: %v", err)
	}
	log.Println("Moderator created: admin@wallpapers.local / admin123 (rank 2)")

	members := []*domain.User{admin}
	for i, email := range []string{"asel@example.com", "bekzat@example.com", "dina@example.com"} {
		members = append(members, newUser(ctx, users, email, "user123", fmt.Sprintf("Member %d", i+1)))
	}

	// ================== WALLPAPERS ==================
	log.Println("Creating wallpapers...")
	now := time.Now()
	created := make([]*domain.Wallpaper, 0, len(titles))
	for i, title := range titles {
		uploader := members[rand.IntN(len(members))]

		img, err := images.Save(ctx, uploader.ID, gradient(fmt.Sprintf("seed-%02d.png", i)))
		if err != nil {
			log.Fatalf("save image %q: %v", title, err)
		}

		w := &domain.Wallpaper{
			Title:        title,
			ImageID:      img.ID,
			ImageURL:     img.FileURL,
			ThumbnailURL: img.ThumbnailURL,
			UploaderID:   uploader.ID,
			ViewsCount:   int64(rand.IntN(500)),
			CreatedAt:    now.Add(-time.Duration(rand.IntN(24*30)) * time.Hour),
		}
		if err := wallpapers.CreateTagged(ctx, w, pickTags(2+rand.IntN(2))); err != nil {
			log.Fatalf("create wallpaper %q: %v", title, err)
		}
		created = append(created, w)
	}

	// ================== FAVORITES ==================
	log.Println("Creating favorites...")
	favCount := 0
	for _, u := range members {
		for _, w := range created {
			if rand.IntN(4) != 0 {
				continue
			}
			if err := favorites.Add(ctx, u.ID, w.ID); err != nil {
				log.Fatalf("favorite: %v", err)
			}
			favCount++
		}
	}

	n, err := wallpaper.Rerank(ctx, wallpapers, nil, now, 0)
	if err != nil {
		log.Fatalf("rerank: %v", err)
	}

	log.Printf("Seed completed: users=%d wallpapers=%d favorites=%d ranked=%d", len(members), len(created), favCount, n)
}

func newUser(ctx context.Context, users *repository.UserRepository, email, password, name string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	u := &domain.User{Email: email, PasswordHash: string(hash), Name: name}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func pickTags(n int) []string {
	perm := rand.Perm(len(tagPool))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, tagPool[i])
	}
	return out
}

// gradient renders a small two-colour PNG so every seeded wallpaper has a real file and thumbnail.
func gradient(name string) media.Upload {
	const w, h = 640, 360
	from := color.RGBA{R: uint8(rand.IntN(256)), G: uint8(rand.IntN(256)), B: uint8(rand.IntN(256)), A: 255}
	to := color.RGBA{R: uint8(rand.IntN(256)), G: uint8(rand.IntN(256)), B: uint8(rand.IntN(256)), A: 255}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		t := float64(x) / float64(w-1)
		c := color.RGBA{
			R: lerp(from.R, to.R, t),
			G: lerp(from.G, to.G, t),
			B: lerp(from.B, to.B, t),
			A: 255,
		}
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatal(err)
	}
	return media.Upload{Filename: name, Size: int64(buf.Len()), Content: &buf}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
