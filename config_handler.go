package main

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"feriwala/config"
	"feriwala/locale"
	"feriwala/respond"

	"go.uber.org/zap"
)

type publicSettings struct {
	Shop config.ShopConfig `json:"shop"`
}

type settings struct {
	Shop       config.ShopConfig `json:"shop"`
	UploadsDir string            `json:"uploadsDir"`
}

// GetConfigHandler returns the shop contact block for the storefront.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, publicSettings{Shop: config.GetConfig().Shop})
	}
}

// GetSettingsHandler returns everything SaveConfigHandler can change, including the server folder.
func GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		respond.JSON(w, http.StatusOK, settings{Shop: cfg.Shop, UploadsDir: cfg.Uploads.Dir})
	}
}

// SaveConfigHandler stores the shop block and the uploads folder.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settings
		if !respond.Decode(w, r, &req) {
			return
		}

		newCfg := config.GetConfig()
		newCfg.Shop = config.ShopConfig{
			Name:     strings.TrimSpace(req.Shop.Name),
			Phone:    strings.TrimSpace(req.Shop.Phone),
			WhatsApp: strings.TrimSpace(req.Shop.WhatsApp),
			Email:    strings.TrimSpace(req.Shop.Email),
			Address:  strings.TrimSpace(req.Shop.Address),
		}
		if dir := strings.TrimSpace(req.UploadsDir); dir != "" {
			if err := validateFolderPath(dir); err != nil {
				respond.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			newCfg.Uploads.Dir = dir
		}

		if err := config.SaveConfig(newCfg); err != nil {
			zap.S().Errorw("saving config", "error", err)
			respond.Message(w, r, locale.MsgInternalError, http.StatusInternalServerError)
			return
		}
		respond.Message(w, r, locale.MsgSaved, http.StatusOK)
	}
}

func validateFolderPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("folder not found: " + path)
		}
		zap.S().Warnw("checking folder path", "path", path, "error", err)
		return errors.New("could not check folder: " + path)
	}
	if !info.IsDir() {
		return errors.New("not a folder: " + path)
	}
	return nil
}
