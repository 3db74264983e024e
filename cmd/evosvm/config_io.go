package main

import (
	"k8s.io/klog/v2"

	"github.com/ducminhle1904/evosvm/pkg/config"
)

func saveResolvedConfig(cfg *config.TrainingConfig, path string) error {
	if err := config.NewManager().SaveConfig(cfg, path); err != nil {
		return err
	}
	klog.InfoS("Saved configuration", "path", path)
	return nil
}
