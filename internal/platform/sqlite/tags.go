// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/schema"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

// ListTags returns tags ordered by name, optionally restricted to one tag_type.
func (q *queries) ListTags(context context.Context, tagType *string) ([]catalog.Tag, error) {
	t := schema.Tag

	var query strings.Builder
	var args []any

	fmt.Fprintf(&query, `SELECT %s FROM %s`, strings.Join(t.Columns(), ", "), t.Table)
	if tagType != nil {
		fmt.Fprintf(&query, ` WHERE %s = ?`, t.TagType)
		args = append(args, *tagType)
	}
	fmt.Fprintf(&query, ` ORDER BY %s ASC`, t.Name)

	rows, err := q.db.QueryContext(context, query.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list tags")
	}
	defer rows.Close()

	tags := []catalog.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan tag")
		}
		tags = append(tags, tag)
	}
	return tags, dberr.Wrap(rows.Err(), "list tags")
}

// TagByName finds a tag by its normalized name.
func (q *queries) TagByName(context context.Context, name string) (*catalog.Tag, error) {
	t := schema.Tag
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`, strings.Join(t.Columns(), ", "), t.Table, t.Name)

	tag, err := scanTag(q.db.QueryRowContext(context, query, catalog.NormalizeTagName(name)))
	if err != nil {
		return nil, dberr.Wrap(err, "find tag by name")
	}
	return &tag, nil
}

func (q *queries) InsertTag(context context.Context, tag *catalog.Tag) error {
	t := schema.Tag
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (?, ?) RETURNING %s`, t.Table, t.Name, t.TagType, t.ID)

	id, err := q.insertReturningID(context, "insert tag", query, tag.Name, tag.TagType)
	if err != nil {
		return err
	}
	tag.ID = id
	return nil
}

func (q *queries) DeleteTag(context context.Context, id int64) error {
	t := schema.Tag
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, t.Table, t.ID)
	return q.execOne(context, "delete tag", query, id)
}
