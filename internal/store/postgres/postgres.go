package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users     { return &users{db: s.db} }
func (s *pgStore) Folders() store.Folders { return &folders{db: s.db} }
func (s *pgStore) Notes() store.Notes     { return &notes{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema applies the embedded DDL. Statements are idempotent
// (IF NOT EXISTS) so this is safe on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range store.DDLStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	tx, err := u.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO users (user_id, email, display_name, creation_time)
        VALUES ($1,$2,$3,$4)
    `, m.UserID, m.Email, m.DisplayName, now); err != nil {
		if isUniqueViolation(err) {
			return nil, model.NewValidationError("userId", "user id or email already registered")
		}
		return nil, err
	}

	// Root folder is created in the same transaction as the user.
	rootID := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO folders (folder_id, owner_id, parent_folder_id, title, is_root, version, creation_time)
        VALUES ($1,$2,NULL,'Root',TRUE,1,$3)
    `, rootID, m.UserID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	out := *m
	out.CreationTime = now
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, creation_time FROM users WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.UserID, &out.Email, &out.DisplayName, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NewNotFoundError("user", userID)
		}
		return nil, err
	}
	return &out, nil
}

// --- Folders ---

type folders struct{ db *sql.DB }

const folderColumns = `folder_id, owner_id, parent_folder_id, title, image_name, is_root, version, creation_time`

func scanFolder(row interface{ Scan(...interface{}) error }) (*model.Folder, error) {
	var f model.Folder
	if err := row.Scan(&f.FolderID, &f.OwnerID, &f.ParentFolderID, &f.Title, &f.ImageName, &f.IsRoot, &f.Version, &f.CreationTime); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *folders) Create(ctx context.Context, mf *model.Folder) (*model.Folder, error) {
	id := mf.FolderID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := f.db.ExecContext(ctx, `
        INSERT INTO folders (folder_id, owner_id, parent_folder_id, title, image_name, is_root, version, creation_time)
        VALUES ($1,$2,$3,$4,$5,$6,1,$7)
    `, id, mf.OwnerID, mf.ParentFolderID, mf.Title, mf.ImageName, mf.IsRoot, now)
	if err != nil {
		if isFKViolation(err) {
			if mf.ParentFolderID != nil {
				return nil, model.NewNotFoundError("folder", *mf.ParentFolderID)
			}
			return nil, model.NewNotFoundError("user", mf.OwnerID)
		}
		return nil, err
	}
	out := *mf
	out.FolderID = id
	out.Version = 1
	out.CreationTime = now
	return &out, nil
}

func (f *folders) Get(ctx context.Context, folderID string) (*model.Folder, error) {
	row := f.db.QueryRowContext(ctx, `SELECT `+folderColumns+` FROM folders WHERE folder_id=$1`, folderID)
	out, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("folder", folderID)
	}
	return out, err
}

func (f *folders) Root(ctx context.Context, ownerID string) (*model.Folder, error) {
	row := f.db.QueryRowContext(ctx, `SELECT `+folderColumns+` FROM folders WHERE owner_id=$1 AND is_root`, ownerID)
	out, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("root folder for user", ownerID)
	}
	return out, err
}

func (f *folders) Children(ctx context.Context, folderID string) ([]*model.Folder, error) {
	return f.list(ctx, `SELECT `+folderColumns+` FROM folders WHERE parent_folder_id=$1 ORDER BY title, folder_id`, folderID)
}

func (f *folders) ListByOwner(ctx context.Context, ownerID string) ([]*model.Folder, error) {
	return f.list(ctx, `SELECT `+folderColumns+` FROM folders WHERE owner_id=$1 ORDER BY title, folder_id`, ownerID)
}

func (f *folders) list(ctx context.Context, query string, arg interface{}) ([]*model.Folder, error) {
	rows, err := f.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Folder
	for rows.Next() {
		fl, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fl)
	}
	return out, rows.Err()
}

func (f *folders) CountChildren(ctx context.Context, folderID string) (int, error) {
	var n int
	err := f.db.QueryRowContext(ctx, `SELECT count(*) FROM folders WHERE parent_folder_id=$1`, folderID).Scan(&n)
	return n, err
}

func (f *folders) Update(ctx context.Context, mf *model.Folder) (*model.Folder, error) {
	res, err := f.db.ExecContext(ctx, `
        UPDATE folders SET title=$1, image_name=$2, version=version+1
        WHERE folder_id=$3 AND version=$4
    `, mf.Title, mf.ImageName, mf.FolderID, mf.Version)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Distinguish "gone" from "changed underneath us".
		if _, err := f.Get(ctx, mf.FolderID); err != nil {
			return nil, err
		}
		return nil, model.NewConflictError("folder", mf.FolderID)
	}
	return f.Get(ctx, mf.FolderID)
}

func (f *folders) Delete(ctx context.Context, folderID string) error {
	res, err := f.db.ExecContext(ctx, `DELETE FROM folders WHERE folder_id=$1`, folderID)
	if err != nil {
		if isFKViolation(err) {
			return model.NewStructuralError(folderID, "folder still has child folders or notes")
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.NewNotFoundError("folder", folderID)
	}
	return nil
}

// --- Notes ---

type notes struct{ db *sql.DB }

const noteColumns = `note_id, folder_id, title, body, is_favourite, priority, version, creation_time, edit_time`

func scanNote(row interface{ Scan(...interface{}) error }) (*model.Note, error) {
	var n model.Note
	if err := row.Scan(&n.NoteID, &n.FolderID, &n.Title, &n.Text, &n.IsFavourite, &n.Priority, &n.Version, &n.CreationTime, &n.EditTime); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *notes) Create(ctx context.Context, mn *model.Note) (*model.Note, error) {
	id := mn.NoteID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	created := mn.CreationTime
	if created.IsZero() {
		created = now
	}
	edited := mn.EditTime
	if edited.IsZero() {
		edited = created
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO notes (note_id, folder_id, title, body, is_favourite, priority, version, creation_time, edit_time)
        VALUES ($1,$2,$3,$4,$5,$6,1,$7,$8)
    `, id, mn.FolderID, mn.Title, mn.Text, mn.IsFavourite, mn.Priority, created, edited)
	if err != nil {
		if isFKViolation(err) {
			return nil, model.NewNotFoundError("folder", mn.FolderID)
		}
		return nil, err
	}
	out := *mn
	out.NoteID = id
	out.Version = 1
	out.CreationTime = created
	out.EditTime = edited
	return &out, nil
}

func (s *notes) Get(ctx context.Context, noteID string) (*model.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE note_id=$1`, noteID)
	out, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("note", noteID)
	}
	return out, err
}

func (s *notes) ListByFolder(ctx context.Context, req model.ListNotesRequest) ([]*model.Note, error) {
	col := "title"
	switch req.SortKey {
	case model.SortByPriority:
		col = "priority"
	case model.SortByDate:
		col = "creation_time"
	}
	dir := "DESC"
	if req.Ascending {
		dir = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM notes WHERE folder_id=$1 ORDER BY %s %s, note_id`, noteColumns, col, dir)
	return s.list(ctx, query, req.FolderID)
}

func (s *notes) CountByFolder(ctx context.Context, folderID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM notes WHERE folder_id=$1`, folderID).Scan(&n)
	return n, err
}

func (s *notes) Search(ctx context.Context, ownerID, query string) ([]*model.Note, error) {
	q := `
        SELECT n.note_id, n.folder_id, n.title, n.body, n.is_favourite, n.priority, n.version, n.creation_time, n.edit_time
        FROM notes n JOIN folders f ON n.folder_id = f.folder_id
        WHERE f.owner_id=$1 AND upper(n.title) LIKE '%' || upper($2) || '%' ESCAPE '\'
        ORDER BY n.creation_time, n.note_id`
	return s.list(ctx, q, ownerID, escapeLike(query))
}

func (s *notes) ListFavourites(ctx context.Context, ownerID string) ([]*model.Note, error) {
	q := `
        SELECT n.note_id, n.folder_id, n.title, n.body, n.is_favourite, n.priority, n.version, n.creation_time, n.edit_time
        FROM notes n JOIN folders f ON n.folder_id = f.folder_id
        WHERE f.owner_id=$1 AND n.is_favourite
        ORDER BY n.creation_time, n.note_id`
	return s.list(ctx, q, ownerID)
}

func (s *notes) list(ctx context.Context, query string, args ...interface{}) ([]*model.Note, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *notes) Update(ctx context.Context, mn *model.Note) (*model.Note, error) {
	res, err := s.db.ExecContext(ctx, `
        UPDATE notes SET folder_id=$1, title=$2, body=$3, is_favourite=$4, priority=$5, edit_time=$6, version=version+1
        WHERE note_id=$7 AND version=$8
    `, mn.FolderID, mn.Title, mn.Text, mn.IsFavourite, mn.Priority, mn.EditTime, mn.NoteID, mn.Version)
	if err != nil {
		if isFKViolation(err) {
			return nil, model.NewNotFoundError("folder", mn.FolderID)
		}
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if _, err := s.Get(ctx, mn.NoteID); err != nil {
			return nil, err
		}
		return nil, model.NewConflictError("note", mn.NoteID)
	}
	return s.Get(ctx, mn.NoteID)
}

func (s *notes) Delete(ctx context.Context, noteID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE note_id=$1`, noteID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.NewNotFoundError("note", noteID)
	}
	return nil
}

// isFKViolation reports whether err is a foreign_key_violation.
func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isUniqueViolation reports whether err is a unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// escapeLike makes %, _ and the escape character match literally in a LIKE
// pattern, so a search query is always a plain substring.
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}
