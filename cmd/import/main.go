// Command import loads posts from a JSON dump into the database, for moving
// content from another blog engine. The dump is an array of objects with
// title, author, content and optional imageUrl fields.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/apgomes/blogmod/internal/db"
	"github.com/apgomes/blogmod/internal/model"
	"github.com/apgomes/blogmod/internal/repository"
	"github.com/apgomes/blogmod/internal/util/compression"
)

type dumpEntry struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

func main() {
	dumpPath := flag.String("dump", "", "Path to the JSON dump file")
	dbPath := flag.String("db", "./blogmod.db", "Path to the SQLite database")
	ownerID := flag.String("owner-id", "", "Owner user ID for the imported posts")
	codec := flag.String("compression", "zstd", "Content compression codec (zstd or gzip)")
	flag.Parse()

	if *dumpPath == "" {
		log.Fatal("The --dump flag is required")
	}

	data, err := os.ReadFile(*dumpPath)
	if err != nil {
		log.Fatalf("Error reading dump %s: %v", *dumpPath, err)
	}

	var entries []dumpEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("Error parsing dump: %v", err)
	}

	database := db.NewSQLite(*dbPath)
	if err := database.InitDB(); err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.Close()

	repo := repository.NewDBPostRepository(database, compression.ForName(*codec))

	imported := 0
	for i, entry := range entries {
		if entry.Title == "" || entry.Author == "" {
			log.Printf("Skipping entry %d: missing title or author", i)
			continue
		}

		post, err := repo.Create(model.PostFields{
			Title:    entry.Title,
			Author:   entry.Author,
			Content:  entry.Content,
			ImageURL: entry.ImageURL,
			Owner:    model.UserID(*ownerID),
		})
		if err != nil {
			log.Printf("Error importing entry %d (%s): %v", i, entry.Title, err)
			continue
		}

		log.Printf("Imported post %s: %s", post.ID, post.Title)
		imported++
	}

	log.Printf("Done: %d of %d entries imported", imported, len(entries))
}
