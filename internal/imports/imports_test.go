package imports

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symguard/internal/lang"
)

func TestExtractPython(t *testing.T) {
	content := `import os
import os.path as osp
import requests, json
from collections import defaultdict, OrderedDict as OD
from .models import Order
from app.services import billing

result = process(data)
`
	got := Extract(lang.Python, content)
	want := []ImportInfo{
		{Module: "os", Names: []string{"os"}, Line: 1, External: true},
		{Module: "os.path", Names: []string{"osp"}, Line: 2, External: true},
		{Module: "requests", Names: []string{"requests"}, Line: 3, External: true},
		{Module: "json", Names: []string{"json"}, Line: 3, External: true},
		{Module: "collections", Names: []string{"defaultdict", "OD"}, Line: 4, External: true},
		{Module: ".models", Names: []string{"Order"}, Line: 5, External: false},
		{Module: "app.services", Names: []string{"billing"}, Line: 6, External: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractJavaScript(t *testing.T) {
	content := `import React from "react"
import { useState, useEffect as effect } from "react"
import * as fs from "node:fs"
import "./styles.css"
import { OrderList } from "./components/OrderList"
import api from "@/lib/api"
const express = require("express")
const { Router } = require("express")
const pg = await import("pg")
`
	got := Extract(lang.JavaScript, content)
	want := []ImportInfo{
		{Module: "react", Names: []string{"React"}, Line: 1, External: true},
		{Module: "react", Names: []string{"useState", "effect"}, Line: 2, External: true},
		{Module: "node:fs", Names: []string{"fs"}, Line: 3, External: true},
		{Module: "./styles.css", Line: 4, External: false},
		{Module: "./components/OrderList", Names: []string{"OrderList"}, Line: 5, External: false},
		{Module: "@/lib/api", Names: []string{"api"}, Line: 6, External: false},
		{Module: "express", Names: []string{"express"}, Line: 7, External: true},
		{Module: "express", Names: []string{"Router"}, Line: 8, External: true},
		{Module: "pg", Names: []string{"pg"}, Line: 9, External: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractGo(t *testing.T) {
	content := `package server

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"myapp/internal/orders"
)

func main() {}
`
	got := Extract(lang.Go, content)
	require.Len(t, got, 6)

	byModule := map[string]ImportInfo{}
	for _, in := range got {
		byModule[in.Module] = in
	}
	assert.Equal(t, []string{"fmt"}, byModule["fmt"].Names)
	assert.True(t, byModule["fmt"].External)
	assert.Equal(t, []string{"http"}, byModule["net/http"].Names)
	assert.Equal(t, []string{"log"}, byModule["github.com/sirupsen/logrus"].Names)
	assert.True(t, byModule["github.com/sirupsen/logrus"].External)
	assert.Equal(t, []string{"cobra"}, byModule["github.com/spf13/cobra"].Names)
	assert.Equal(t, []string{"yaml"}, byModule["gopkg.in/yaml.v3"].Names)
	assert.True(t, byModule["gopkg.in/yaml.v3"].External)
	assert.Equal(t, []string{"orders"}, byModule["myapp/internal/orders"].Names)
	assert.False(t, byModule["myapp/internal/orders"].External)
}

func TestExtractPHP(t *testing.T) {
	content := `<?php

namespace App\Http\Controllers;

use Illuminate\Http\Request;
use App\Models\Order;
use Carbon\Carbon as Now;
require_once 'vendor/autoload.php';
`
	got := Extract(lang.PHP, content)
	require.Len(t, got, 4)
	assert.Equal(t, ImportInfo{Module: `Illuminate\Http\Request`, Names: []string{"Request"}, Line: 5, External: true}, got[0])
	assert.Equal(t, ImportInfo{Module: `App\Models\Order`, Names: []string{"Order"}, Line: 6, External: false}, got[1])
	assert.Equal(t, ImportInfo{Module: `Carbon\Carbon`, Names: []string{"Now"}, Line: 7, External: true}, got[2])
	assert.True(t, got[3].External, "vendor require is external")
}

func TestExtractRust(t *testing.T) {
	content := `use std::collections::HashMap;
use serde::{Serialize, Deserialize};
use tokio::sync::Mutex as AsyncMutex;
use crate::store::Ledger;
pub use self::config::Settings;
`
	got := Extract(lang.Rust, content)
	require.Len(t, got, 5)

	assert.Equal(t, []string{"HashMap", "std"}, got[0].Names)
	assert.True(t, got[0].External)
	assert.Equal(t, []string{"Serialize", "Deserialize", "serde"}, got[1].Names)
	assert.True(t, got[1].External)
	assert.Equal(t, []string{"AsyncMutex", "tokio"}, got[2].Names)
	assert.True(t, got[2].External)
	assert.Equal(t, []string{"Ledger"}, got[3].Names)
	assert.False(t, got[3].External)
	assert.Equal(t, []string{"Settings"}, got[4].Names)
	assert.False(t, got[4].External)
}

func TestExternalNamesAndHasExternal(t *testing.T) {
	infos := []ImportInfo{
		{Module: "react", Names: []string{"React", "useState"}, External: true},
		{Module: "./local", Names: []string{"helper"}, External: false},
	}
	names := ExternalNames(infos)
	assert.Contains(t, names, "React")
	assert.Contains(t, names, "useState")
	assert.NotContains(t, names, "helper")
	assert.True(t, HasExternal(infos))
	assert.False(t, HasExternal(infos[1:]))
}

func TestUnparseableImportsAreSkipped(t *testing.T) {
	content := "import\nfrom import\nimport , ,\n"
	got := Extract(lang.Python, content)
	assert.Empty(t, got)

	assert.Nil(t, Extract(lang.Language("cobol"), "import x"))
}
