// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureProjects(ctx, db); err != nil {
		problems = append(problems, "projects: "+err.Error())
	}
	if err := ensureSubSections(ctx, db); err != nil {
		problems = append(problems, "sub_sections: "+err.Error())
	}
	if err := ensureUserCache(ctx, db); err != nil {
		problems = append(problems, "user_cache: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func createIndexes(ctx context.Context, db *mongo.Database, coll string, idx []mongo.IndexModel) error {
	cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, err := db.Collection(coll).Indexes().CreateMany(cctx, idx)
	return err
}

func ensureProjects(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, "projects", []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_id", Value: 1}}},
		// list-for-user query: approved embedded entries
		{Keys: bson.D{
			{Key: "resources.user_id", Value: 1},
			{Key: "resources.is_approved", Value: 1},
		}},
	})
}

func ensureSubSections(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, "sub_sections", []mongo.IndexModel{
		// case-insensitive name uniqueness under one project
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "project_name_ci", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "project_id", Value: 1},
			{Key: "resources.user_id", Value: 1},
			{Key: "resources.is_approved", Value: 1},
		}},
	})
}

func ensureUserCache(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, "user_cache", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
