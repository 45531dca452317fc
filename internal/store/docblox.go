package store

import (
	"context"
	"fmt"
)

// --- Version operations ---

const versionCols = `id, major, minor, branch, is_default, codepath, docspath`

// Versions returns all versions ordered by major, minor, branch ascending.
func (s *Store) Versions(ctx context.Context) ([]*Version, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+versionCols+" FROM versions ORDER BY major ASC, minor ASC, branch ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}
	defer rows.Close()
	var versions []*Version
	for rows.Next() {
		v := &Version{}
		if err := rows.Scan(&v.ID, &v.Major, &v.Minor, &v.Branch, &v.IsDefault, &v.CodePath, &v.DocsPath); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// InsertVersion adds a version row and sets v.ID.
func (s *Store) InsertVersion(ctx context.Context, v *Version) (int64, error) {
	err := s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO versions (major, minor, branch, is_default, codepath, docspath)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		v.Major, v.Minor, v.Branch, v.IsDefault, v.CodePath, v.DocsPath,
	).Scan(&v.ID)
	if err != nil {
		return 0, fmt.Errorf("insert version: %w", err)
	}
	return v.ID, nil
}

// --- Docblock operations ---

const docblockCols = `id, version_id, package, file, hash, docblock, markers, constants, functions, classes`

// DocblocksByVersion returns every record of a version ordered by package,
// then file. Callers that look up a file hash rely on this order for
// first-match semantics.
func (s *Store) DocblocksByVersion(ctx context.Context, versionID int64) ([]*DocblockRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT "+docblockCols+" FROM docblox WHERE version_id = ? ORDER BY package ASC, file ASC"),
		versionID,
	)
	if err != nil {
		return nil, fmt.Errorf("docblocks by version: %w", err)
	}
	defer rows.Close()
	var records []*DocblockRecord
	for rows.Next() {
		r := &DocblockRecord{}
		if err := rows.Scan(
			&r.ID, &r.VersionID, &r.Package, &r.File, &r.Hash,
			&r.Docblock, &r.Markers, &r.Constants, &r.Functions, &r.Classes,
		); err != nil {
			return nil, fmt.Errorf("scan docblock: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountDocblocks returns how many files were analyzed for a version.
func (s *Store) CountDocblocks(ctx context.Context, versionID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT COUNT(*) FROM docblox WHERE version_id = ?"), versionID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count docblocks: %w", err)
	}
	return n, nil
}

// InsertDocblock adds a docblock row and sets r.ID. Unset sequence blobs are
// stored as the empty-sequence sentinel.
func (s *Store) InsertDocblock(ctx context.Context, r *DocblockRecord) (int64, error) {
	r.Markers = emptyBlob(r.Markers)
	r.Constants = emptyBlob(r.Constants)
	r.Functions = emptyBlob(r.Functions)
	r.Classes = emptyBlob(r.Classes)
	err := s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO docblox (version_id, package, file, hash, docblock, markers, constants, functions, classes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		r.VersionID, r.Package, r.File, r.Hash, r.Docblock,
		r.Markers, r.Constants, r.Functions, r.Classes,
	).Scan(&r.ID)
	if err != nil {
		return 0, fmt.Errorf("insert docblock: %w", err)
	}
	return r.ID, nil
}
