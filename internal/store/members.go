package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// GetMembers returns members by ID. An empty id list returns all members.
func (db *DB) GetMembers(ids []string) ([]MemberRow, error) {
	query := "SELECT id, name, email, phone FROM members"
	args := idArgs(ids)
	if len(ids) > 0 {
		query += " WHERE id IN (" + placeholders(len(ids)) + ")"
	}
	query += " ORDER BY id"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []MemberRow
	for rows.Next() {
		var m MemberRow
		var email, phone sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &email, &phone); err != nil {
			return nil, err
		}
		m.Email = email.String
		m.Phone = phone.String
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetInteractions returns interaction rows for the given member IDs, or all
// rows when the list is empty.
func (db *DB) GetInteractions(memberIDs []string) ([]InteractionRow, error) {
	query := "SELECT id, member_id, interaction_type, interaction_date, created_at FROM member_interactions"
	args := idArgs(memberIDs)
	if len(memberIDs) > 0 {
		query += " WHERE member_id IN (" + placeholders(len(memberIDs)) + ")"
	}
	query += " ORDER BY id"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying member_interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var interactions []InteractionRow
	for rows.Next() {
		var r InteractionRow
		var itype, idate, created sql.NullString
		if err := rows.Scan(&r.ID, &r.MemberID, &itype, &idate, &created); err != nil {
			return nil, err
		}
		r.InteractionType = itype.String
		r.InteractionDate = idate.String
		r.CreatedAt = created.String
		interactions = append(interactions, r)
	}
	return interactions, rows.Err()
}

// GetActivities returns activity rows for the given member IDs, or all rows
// when the list is empty.
func (db *DB) GetActivities(memberIDs []string) ([]ActivityRow, error) {
	query := "SELECT id, member_id, activity_type, created_at FROM member_activities"
	args := idArgs(memberIDs)
	if len(memberIDs) > 0 {
		query += " WHERE member_id IN (" + placeholders(len(memberIDs)) + ")"
	}
	query += " ORDER BY id"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying member_activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var activities []ActivityRow
	for rows.Next() {
		var r ActivityRow
		var atype, created sql.NullString
		if err := rows.Scan(&r.ID, &r.MemberID, &atype, &created); err != nil {
			return nil, err
		}
		r.ActivityType = atype.String
		r.CreatedAt = created.String
		activities = append(activities, r)
	}
	return activities, rows.Err()
}

// InsertMember inserts a member row. Used by seeding and tests.
func (db *DB) InsertMember(m *MemberRow) error {
	_, err := db.conn.Exec(
		"INSERT INTO members (id, name, email, phone) VALUES (?, ?, ?, ?)",
		m.ID, m.Name, m.Email, m.Phone,
	)
	return err
}

// InsertInteraction inserts an interaction row and returns its ID.
func (db *DB) InsertInteraction(r *InteractionRow) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO member_interactions (member_id, interaction_type, interaction_date, created_at)
		 VALUES (?, ?, ?, ?)`,
		r.MemberID, r.InteractionType, r.InteractionDate, r.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertActivity inserts an activity row and returns its ID.
func (db *DB) InsertActivity(r *ActivityRow) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO member_activities (member_id, activity_type, created_at) VALUES (?, ?, ?)",
		r.MemberID, r.ActivityType, r.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// placeholders returns n comma-joined "?" markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// idArgs converts a string id list to query args.
func idArgs(ids []string) []any {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
