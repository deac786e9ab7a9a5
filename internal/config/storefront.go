package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ImageConfig drives how stored image references become servable URLs.
type ImageConfig struct {
	DefaultImage   string   `mapstructure:"defaultImage"`
	UploadsPrefix  string   `mapstructure:"uploadsPrefix"`
	AssetsPrefix   string   `mapstructure:"assetsPrefix"`
	UploadKeywords []string `mapstructure:"uploadKeywords"`
}

type StorefrontConfig struct {
	Images ImageConfig `mapstructure:"images"`
}

func DefaultStorefrontConfig() StorefrontConfig {
	return StorefrontConfig{
		Images: ImageConfig{
			DefaultImage:   "/assets/General Photo1.jpg",
			UploadsPrefix:  "/attached_assets/",
			AssetsPrefix:   "/assets/",
			UploadKeywords: []string{"matcha"},
		},
	}
}

type StorefrontConfigHolder struct {
	current atomic.Value // holds StorefrontConfig
}

// NewStaticStorefrontConfigHolder returns a holder that never reloads.
func NewStaticStorefrontConfigHolder(cfg StorefrontConfig) *StorefrontConfigHolder {
	holder := &StorefrontConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewStorefrontConfigHolder() (*StorefrontConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("storefront")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/storefront")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultStorefrontConfig()
	v.SetDefault("storefront.images.defaultImage", defaults.Images.DefaultImage)
	v.SetDefault("storefront.images.uploadsPrefix", defaults.Images.UploadsPrefix)
	v.SetDefault("storefront.images.assetsPrefix", defaults.Images.AssetsPrefix)
	v.SetDefault("storefront.images.uploadKeywords", defaults.Images.UploadKeywords)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileLoaded = false
	}

	var cfg StorefrontConfig
	if err := v.UnmarshalKey("storefront", &cfg); err != nil {
		return nil, err
	}
	if err := validateStorefrontConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticStorefrontConfigHolder(cfg)
	if !fileLoaded {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated StorefrontConfig
		if err := v.UnmarshalKey("storefront", &updated); err != nil {
			log.Printf("[storefront-config] reload failed: %v", err)
			return
		}
		if err := validateStorefrontConfig(updated); err != nil {
			log.Printf("[storefront-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[storefront-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *StorefrontConfigHolder) Get() StorefrontConfig {
	return h.current.Load().(StorefrontConfig)
}

func validateStorefrontConfig(cfg StorefrontConfig) error {
	images := cfg.Images
	if strings.TrimSpace(images.DefaultImage) == "" {
		return errors.New("storefront.images.defaultImage cannot be empty")
	}
	if !strings.HasSuffix(images.UploadsPrefix, "/") {
		return errors.New("storefront.images.uploadsPrefix must end with /")
	}
	if !strings.HasSuffix(images.AssetsPrefix, "/") {
		return errors.New("storefront.images.assetsPrefix must end with /")
	}
	return nil
}
