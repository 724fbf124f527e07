package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	"github.com/lysyi3m/news-comb/app/enrich"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var _ NewsRepository = (*SQLiteNewsRepository)(nil)

var newsColumns = []string{
	"id", "title", "link",
	"COALESCE(description, '')", "COALESCE(guid, '')", "COALESCE(guid_is_permalink, '')",
	"COALESCE(pub_date, '')", "published_at",
	"COALESCE(source_name, '')", "COALESCE(source_url, '')", "COALESCE(category, '')",
	"author", "date", "article", "keywords", "image_links", "video_links", "related_links",
	"sentiment", "summary", "explained_summary", "importance_rating", "created_at",
}

type SQLiteNewsRepository struct {
	db *DB
}

func NewNewsRepository(db *DB) *SQLiteNewsRepository {
	return &SQLiteNewsRepository{db: db}
}

func (r *SQLiteNewsRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("1").From("news")
	sb.Where(sb.Equal("title", title))

	exists, err := r.exists(ctx, sb)
	if err != nil {
		return false, fmt.Errorf("failed to search by title: %w", err)
	}
	return exists, nil
}

// Insert stores item and returns its id. A title that is already stored
// yields ErrDuplicate.
func (r *SQLiteNewsRepository) Insert(ctx context.Context, item enrich.Item) (int64, error) {
	lists := make([]string, 0, 5)
	for _, list := range [][]string{item.Keywords, item.ImageLinks, item.VideoLinks, item.RelatedLinks, item.Summary} {
		encoded, err := encodeList(list)
		if err != nil {
			return 0, err
		}
		lists = append(lists, encoded)
	}

	ib := sqlbuilder.NewInsertBuilder()
	ib.InsertInto("news")
	ib.Cols(
		"title", "link", "description", "guid", "guid_is_permalink", "pub_date", "published_at",
		"source_name", "source_url", "category",
		"author", "date", "article", "keywords", "image_links", "video_links", "related_links",
		"sentiment", "summary", "explained_summary", "importance_rating", "created_at",
	)
	ib.Values(
		item.Title, item.Link, nullString(item.Description), nullString(item.GUID), nullString(item.GUIDIsPermalink),
		nullString(item.PubDate), item.PublishedAt,
		nullString(item.SourceName), nullString(item.SourceURL), nullString(item.Category),
		textOrNA(item.Author), textOrNA(item.Date), textOrNA(item.Article),
		lists[0], lists[1], lists[2], lists[3],
		textOrNA(string(item.Sentiment)), lists[4], textOrNA(item.ExplainedSummary), item.ImportanceRating,
		time.Now().UTC(),
	)

	query, args := ib.BuildWithFlavor(sqlbuilder.SQLite)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

func (r *SQLiteNewsRepository) GetByID(ctx context.Context, id int64) (*Document, error) {
	sb := r.selectDocuments("")
	sb.Where(sb.Equal("id", id))
	return r.findOne(ctx, sb)
}

func (r *SQLiteNewsRepository) GetNewest(ctx context.Context, category string) (*Document, error) {
	sb := r.selectDocuments(category)
	sb.OrderBy("id").Desc()
	return r.findOne(ctx, sb)
}

// GetOlder returns the newest document with an id below id.
func (r *SQLiteNewsRepository) GetOlder(ctx context.Context, id int64, category string) (*Document, error) {
	sb := r.selectDocuments(category)
	sb.Where(sb.LessThan("id", id))
	sb.OrderBy("id").Desc()
	return r.findOne(ctx, sb)
}

// GetNewer returns the oldest document with an id above id.
func (r *SQLiteNewsRepository) GetNewer(ctx context.Context, id int64, category string) (*Document, error) {
	sb := r.selectDocuments(category)
	sb.Where(sb.GreaterThan("id", id))
	sb.OrderBy("id").Asc()
	return r.findOne(ctx, sb)
}

// GetLatest returns up to limit documents, newest first.
func (r *SQLiteNewsRepository) GetLatest(ctx context.Context, category string, limit int) ([]Document, error) {
	sb := r.selectDocuments(category)
	sb.OrderBy("id").Desc()
	sb.Limit(limit)
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

func (r *SQLiteNewsRepository) HasOlder(ctx context.Context, id int64, category string) (bool, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("1").From("news")
	sb.Where(sb.LessThan("id", id))
	whereCategory(sb, category)

	exists, err := r.exists(ctx, sb)
	if err != nil {
		return false, fmt.Errorf("failed to probe older documents: %w", err)
	}
	return exists, nil
}

func (r *SQLiteNewsRepository) HasNewer(ctx context.Context, id int64, category string) (bool, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("1").From("news")
	sb.Where(sb.GreaterThan("id", id))
	whereCategory(sb, category)

	exists, err := r.exists(ctx, sb)
	if err != nil {
		return false, fmt.Errorf("failed to probe newer documents: %w", err)
	}
	return exists, nil
}

func (r *SQLiteNewsRepository) GetCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

func (r *SQLiteNewsRepository) selectDocuments(category string) *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(newsColumns...).From("news")
	whereCategory(sb, category)
	return sb
}

func whereCategory(sb *sqlbuilder.SelectBuilder, category string) {
	if category != "" {
		sb.Where(sb.Equal("category", category))
	}
}

func (r *SQLiteNewsRepository) exists(ctx context.Context, sb *sqlbuilder.SelectBuilder) (bool, error) {
	sb.Limit(1)
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	var one int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SQLiteNewsRepository) findOne(ctx context.Context, sb *sqlbuilder.SelectBuilder) (*Document, error) {
	sb.Limit(1)
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*Document, error) {
	var (
		doc         Document
		publishedAt sql.NullTime
		sentiment   string
		lists       [5]string
	)

	err := row.Scan(
		&doc.ID, &doc.Title, &doc.Link,
		&doc.Description, &doc.GUID, &doc.GUIDIsPermalink,
		&doc.PubDate, &publishedAt,
		&doc.SourceName, &doc.SourceURL, &doc.Category,
		&doc.Author, &doc.Date, &doc.Article,
		&lists[0], &lists[1], &lists[2], &lists[3],
		&sentiment, &lists[4], &doc.ExplainedSummary, &doc.ImportanceRating, &doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		doc.PublishedAt = &publishedAt.Time
	}
	doc.Sentiment = enrich.Sentiment(sentiment)

	targets := []*[]string{&doc.Keywords, &doc.ImageLinks, &doc.VideoLinks, &doc.RelatedLinks, &doc.Summary}
	for i, target := range targets {
		if err := json.Unmarshal([]byte(lists[i]), target); err != nil {
			return nil, fmt.Errorf("failed to decode list column: %w", err)
		}
	}

	return &doc, nil
}

func encodeList(values []string) (string, error) {
	if len(values) == 0 {
		values = []string{enrich.NotAvailable}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func textOrNA(s string) string {
	if s == "" {
		return enrich.NotAvailable
	}
	return s
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
