package render

import (
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
)

// PickAdapter returns the first adapter, in enumeration order, that meets
// req. There is no ranking: a later adapter is never preferred over an
// earlier suitable one.
func PickAdapter(instance Instance, req Requirements, logger *slog.Logger) (Adapter, Suitability, error) {
	if logger == nil {
		logger = slog.Default()
	}

	adapters, err := instance.Adapters()
	if err != nil {
		return nil, Suitability{}, errors.Wrap(err, "enumerate adapters")
	}
	if len(adapters) == 0 {
		return nil, Suitability{}, errors.WithStack(ErrNoAdaptersFound)
	}

	var rejected []string
	for _, adapter := range adapters {
		info := adapter.Info()

		result, err := ProbeAdapter(adapter, req)
		if err != nil {
			// A failed query disqualifies this adapter only.
			logger.Warn("skipping adapter", slog.String("adapter", info.Name), slog.Any("error", err))
			rejected = append(rejected, info.Name+": "+err.Error())
			continue
		}

		if result.Suitable(req) {
			logger.Info("selected adapter",
				slog.String("adapter", info.Name),
				slog.String("type", info.Type.String()),
				slog.String("api", info.APIVersion),
				slog.String("pipelineCache", info.PipelineCacheUUID.String()),
				slog.String("graphicsFamily", result.Indices.Graphics.String()),
				slog.String("presentFamily", result.Indices.Present.String()))
			return adapter, result, nil
		}

		reason := rejectReason(result, req)
		logger.Info("adapter not suitable", slog.String("adapter", info.Name), slog.String("reason", reason))
		rejected = append(rejected, info.Name+": "+reason)
	}

	return nil, Suitability{}, errors.Wrapf(ErrNoSuitableAdapter, "%s", strings.Join(rejected, "; "))
}

func rejectReason(result Suitability, req Requirements) string {
	switch {
	case !result.Indices.Graphics.IsSet():
		return "no queue family supports " + req.Queues.String()
	case req.Surface != nil && !result.Indices.Present.IsSet():
		return "no queue family can present to the surface"
	case len(result.MissingExtensions) > 0:
		return "missing extensions " + strings.Join(result.MissingExtensions, ", ")
	default:
		return "surface offers no formats or present modes"
	}
}
