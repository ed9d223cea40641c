// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/schema"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

func (q *queries) ListTags(context context.Context, tagType *string) ([]catalog.Tag, error) {
	t := schema.Tag

	var query strings.Builder
	var args []any

	fmt.Fprintf(&query, `SELECT %s FROM %s`, strings.Join(t.Columns(), ", "), t.Table)
	if tagType != nil {
		fmt.Fprintf(&query, ` WHERE %s = $1`, t.TagType)
		args = append(args, *tagType)
	}
	fmt.Fprintf(&query, ` ORDER BY %s ASC`, t.Name)

	rows, err := q.db.Query(context, query.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list tags")
	}
	return collect(rows, "list tags", scanTag)
}

func (q *queries) TagByName(context context.Context, name string) (*catalog.Tag, error) {
	t := schema.Tag
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(t.Columns(), ", "), t.Table, t.Name)

	tag, err := scanTag(q.db.QueryRow(context, query, catalog.NormalizeTagName(name)))
	if err != nil {
		return nil, dberr.Wrap(err, "find tag by name")
	}
	return &tag, nil
}

func (q *queries) InsertTag(context context.Context, tag *catalog.Tag) error {
	t := schema.Tag
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`, t.Table, t.Name, t.TagType, t.ID)

	var err error
	tag.ID, err = q.insertReturningID(context, "insert tag", query, tag.Name, tag.TagType)
	return err
}

func (q *queries) DeleteTag(context context.Context, id int64) error {
	t := schema.Tag
	return q.execOne(context, "delete tag",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID), id)
}
