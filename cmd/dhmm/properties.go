package main

import (
	"os"
	osuser "os/user"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"
)

// Properties of dhmm.
type Properties struct {
	Workspace string `toml:"workspace_dir"`
	LogDir    string `toml:"log_dir"`
}

// propertiesPath returns $DHMM_PROPERTIES if set, otherwise
// ~/.config/dhmm/properties.toml.
func propertiesPath() string {

	if p := os.Getenv("DHMM_PROPERTIES"); len(p) > 0 {
		return p
	}
	dir, _ := os.Getwd()
	if u, err := osuser.Current(); err == nil {
		dir = filepath.Join(u.HomeDir, ".config", appName)
	}
	return filepath.Join(dir, "properties.toml")
}

// readProperties reads the properties file. A missing or bad file yields
// empty properties.
func readProperties() *Properties {

	p := new(Properties)
	fn := propertiesPath()
	if _, err := toml.DecodeFile(fn, p); err != nil {
		glog.V(2).Infof("unable to read properties file %s - %v", fn, err)
		return new(Properties)
	}
	if err := checkDir(p.Workspace); err != nil {
		glog.Warningf("workspace dir: %v", err)
	}
	return p
}

// Creates dir if it doesn't exist.
func checkDir(path string) error {

	if len(path) == 0 {
		return nil
	}
	return os.MkdirAll(path, 0755)
}
