// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"errors"

	"github.com/akualab/dhmm/model"
	"github.com/golang/glog"
)

// Load reads a model from basename.trans and basename.emit.
//
// A file that is missing or unreadable is not fatal: it is logged, returned in
// warnings and replaced by an empty table. Algorithms that need the missing
// table will then fail with ErrUndefinedState. A malformed line in either
// file is returned as err and no model is created.
func Load(basename string, options ...Option) (m *Model, warnings []error, err error) {

	trans, w, err := loadTable(basename + TransSuffix)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, w...)

	emit, w, err := loadTable(basename + EmitSuffix)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, w...)

	glog.V(1).Infof("loaded model %s: %d transition rows, %d emission rows", basename, trans.Len(), emit.Len())
	return NewModel(trans, emit, options...), warnings, nil
}

func loadTable(fn string) (*model.Table, []error, error) {

	t, err := model.ReadTableFile(fn)
	switch {
	case err == nil:
		return t, nil, nil
	case errors.Is(err, model.ErrFileNotFound), errors.Is(err, model.ErrFileUnreadable):
		glog.Warningf("%v - using empty table", err)
		return t, []error{err}, nil
	default:
		return nil, nil, err
	}
}
