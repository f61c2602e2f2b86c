// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import "context"

type Executor interface {
	Execute(context.Context, Workflow) error
}
