// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides the public API for the GPT decoder stack.
//
// Example:
//
//	gpt, err := model.New(model.ConfigGPT124M())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logits, err := gpt.Forward([][]int{{16833, 3626, 6100}}, false)
package model

import (
	"github.com/ember-ml/ember/internal/model"
)

// Config holds the architecture hyperparameters of a GPT model.
type Config = model.Config

// GPT is a decoder-only transformer language model.
type GPT = model.GPT

// ConfigGPT124M returns the 124M-parameter GPT-2 architecture.
func ConfigGPT124M() Config {
	return model.ConfigGPT124M()
}

// New constructs a GPT with random weights drawn from cfg.Seed.
func New(cfg Config) (*GPT, error) {
	return model.New(cfg)
}
