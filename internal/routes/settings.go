package routes

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	"github.com/websoft9/inventory/internal/settings"
)

// allowedModuleKeys lists the (module, key) groups the settings API may read
// and write. Anything else is rejected with 400.
var allowedModuleKeys = map[string][]string{
	settings.ModuleStock: {settings.KeySerials},
}

// fallbackForKey returns the code-level default of a group.
func fallbackForKey(module, key string) map[string]any {
	switch module + "/" + key {
	case settings.ModuleStock + "/" + settings.KeySerials:
		return settings.DefaultSerials()
	}
	return map[string]any{}
}

// registerSettingsRoutes mounts the settings API. Superuser only.
//
//	GET   /api/ext/settings/{module}  : every group of module
//	PATCH /api/ext/settings/{module}  : body {"<key>": {...}} replaces those groups
func registerSettingsRoutes(g *router.RouterGroup[*core.RequestEvent]) {
	s := g.Group("/settings")
	s.Bind(apis.RequireSuperuserAuth())
	s.GET("/{module}", handleSettingsGet)
	s.PATCH("/{module}", handleSettingsPatch)
}

func handleSettingsGet(e *core.RequestEvent) error {
	module := e.Request.PathValue("module")

	allowedKeys, ok := allowedModuleKeys[module]
	if !ok {
		return e.BadRequestError("unknown settings module: "+module, nil)
	}

	return e.JSON(http.StatusOK, loadModule(e.App, module, allowedKeys))
}

func handleSettingsPatch(e *core.RequestEvent) error {
	module := e.Request.PathValue("module")

	allowedKeys, ok := allowedModuleKeys[module]
	if !ok {
		return e.BadRequestError("unknown settings module: "+module, nil)
	}

	var body map[string]any
	if err := e.BindBody(&body); err != nil {
		return e.BadRequestError("invalid JSON body", err)
	}

	// Validate every key before writing anything.
	allowedSet := make(map[string]bool, len(allowedKeys))
	for _, k := range allowedKeys {
		allowedSet[k] = true
	}
	for k, v := range body {
		if !allowedSet[k] {
			return e.BadRequestError("unknown settings key: "+module+"/"+k, nil)
		}
		if _, ok := v.(map[string]any); !ok {
			return e.JSON(http.StatusUnprocessableEntity, map[string]string{
				"error": "value for key '" + k + "' must be an object",
			})
		}
	}

	for key, raw := range body {
		if err := settings.SetGroup(e.App, module, key, raw.(map[string]any)); err != nil {
			return e.InternalServerError("failed to save "+module+"/"+key, err)
		}
	}

	return e.JSON(http.StatusOK, loadModule(e.App, module, allowedKeys))
}

func loadModule(app core.App, module string, keys []string) map[string]any {
	result := make(map[string]any, len(keys))
	for _, key := range keys {
		v, _ := settings.GetGroup(app, module, key, fallbackForKey(module, key))
		result[key] = v
	}
	return result
}
