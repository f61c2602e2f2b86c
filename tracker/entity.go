// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tracker

import (
	"encoding/json"
	"time"
)

// Entity type names as the tracker's search API knows them.
const (
	EntityPipelineConfiguration = "PipelineConfiguration"
	EntityBundleVersion         = "BundleVersion"
	EntityProject               = "Project"
	EntityHumanUser             = "HumanUser"
)

// EntityRef is a link to another tracker entity, in the shape the tracker
// embeds in link fields and filter values.
type EntityRef struct {
	Type string `json:"type" mapstructure:"type"`
	ID   int    `json:"id" mapstructure:"id"`
	Name string `json:"name,omitempty" mapstructure:"name"`
}

// Filter is one condition of a search query. On the wire it is the
// three-element array the tracker expects: [field, relation, value].
type Filter struct {
	Field    string
	Relation string
	Value    interface{}
}

func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{f.Field, f.Relation, f.Value})
}

// PipelineConfiguration is a tracker record that pins a descriptor (or a
// direct path) for some scope: a project or the whole site, everyone or a
// restricted user list.
type PipelineConfiguration struct {
	ID        int         `mapstructure:"id"`
	Code      string      `mapstructure:"code"`
	Project   *EntityRef  `mapstructure:"project"`
	PluginIDs string      `mapstructure:"plugin_ids"`
	Users     []EntityRef `mapstructure:"users"`
	UpdatedAt time.Time   `mapstructure:"updated_at"`
	// Descriptor is a URI string or a spec dict, whichever shape the
	// record was written with.
	Descriptor  interface{} `mapstructure:"descriptor"`
	WindowsPath string      `mapstructure:"windows_path"`
	MacPath     string      `mapstructure:"mac_path"`
	LinuxPath   string      `mapstructure:"linux_path"`
}

// BundleVersion is a tracker record describing one released version of a
// bundle whose payload is stored as a tracker attachment.
type BundleVersion struct {
	ID         int        `mapstructure:"id"`
	Code       string     `mapstructure:"code"`
	BundleName string     `mapstructure:"bundle_name"`
	Payload    Attachment `mapstructure:"payload"`
}

// Attachment is an uploaded file on a tracker record.
type Attachment struct {
	ID          int    `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	URL         string `mapstructure:"url"`
	ContentType string `mapstructure:"content_type"`
}

// Project is the slice of a tracker project record we care about.
type Project struct {
	ID       int    `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	DiskName string `mapstructure:"disk_name"`
	Archived bool   `mapstructure:"archived"`
}
