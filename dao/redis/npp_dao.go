package redis

import (
	"encoding/json"
	"fmt"
	"strings"

	"npp-server/db"
	"npp-server/models"
)

const REGIONS_GEO_KEY_V1 = "regions_geo_v1"
const REGIONS_GEO_MEMBER_FORMAT_V1 = "regions_geo_member_v1:%s"
const DIAGNOSTICS_KEY_FORMAT = "period_diagnostics_v1:%s_%s"

// EXPORT_TASK_KEY_FORMAT caches export tasks per region and period date.
const EXPORT_TASK_KEY_FORMAT = "export_task_v1:%s_%s"

// RedisNppDAO handles pipeline output caching using Redis: period
// diagnostics, export tasks and the geo index of regions of interest.
type RedisNppDAO struct {
	client db.RedisClient
}

// NewRedisNppDAO initializes a RedisNppDAO with the Redis client.
func NewRedisNppDAO(client db.RedisClient) *RedisNppDAO {
	return &RedisNppDAO{client: client}
}

// UpsertRegion stores the region geo-indexed by its centroid with the
// region's JSON data.
func (dao *RedisNppDAO) UpsertRegion(region models.Region) error {
	ctx := dao.client.GetContext()
	memberKey := fmt.Sprintf(REGIONS_GEO_MEMBER_FORMAT_V1, region.RegionID)
	lat, lng := region.Centroid()
	return dao.client.AddLocationWithJSON(ctx, REGIONS_GEO_KEY_V1, memberKey, lat, lng, region)
}

// GetNearbyRegions retrieves regions whose centroid falls within the
// given radius (in meters).
func (dao *RedisNppDAO) GetNearbyRegions(lat, lon, radius float64) ([]models.Region, error) {
	regionsJSON, err := dao.client.GetLocationsWithinRadius(REGIONS_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisNppDAO] failed to get regions: %v", err)
	}

	regions := make([]models.Region, len(regionsJSON))
	for i, regionJSON := range regionsJSON {
		if err := json.Unmarshal([]byte(regionJSON), &regions[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal region JSON: %v", err)
		}
	}
	return regions, nil
}

// SetPeriodDiagnostics caches the valid-pixel diagnostics for one
// region and period.
func (dao *RedisNppDAO) SetPeriodDiagnostics(d *models.PeriodDiagnostics) error {
	key := fmt.Sprintf(DIAGNOSTICS_KEY_FORMAT, d.RegionID, d.Date)
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostics for %s/%s: %w", d.RegionID, d.Date, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set diagnostics in redis: %w", err)
	}
	return nil
}

// GetPeriodDiagnostics retrieves cached diagnostics for one region and
// period date.
func (dao *RedisNppDAO) GetPeriodDiagnostics(regionID, date string) (*models.PeriodDiagnostics, error) {
	key := fmt.Sprintf(DIAGNOSTICS_KEY_FORMAT, regionID, date)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnostics from redis: %w", err)
	}
	var d models.PeriodDiagnostics
	if err := json.Unmarshal([]byte(str), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal diagnostics JSON: %w", err)
	}
	return &d, nil
}

// ListCachedDiagnosticKeys returns the region/date suffixes of all
// cached diagnostics entries.
func (dao *RedisNppDAO) ListCachedDiagnosticKeys() ([]string, error) {
	pattern := fmt.Sprintf(DIAGNOSTICS_KEY_FORMAT, "*", "")
	keys, err := dao.client.Keys(strings.TrimSuffix(pattern, "_"))
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnostics keys: %w", err)
	}

	prefix := fmt.Sprintf(DIAGNOSTICS_KEY_FORMAT, "", "")
	prefix = strings.TrimSuffix(prefix, "_")
	suffixes := make([]string, 0, len(keys))
	for _, k := range keys {
		suffixes = append(suffixes, strings.TrimPrefix(k, prefix))
	}
	return suffixes, nil
}

// DeletePeriodDiagnostics removes a cached diagnostics entry.
func (dao *RedisNppDAO) DeletePeriodDiagnostics(regionID, date string) error {
	key := fmt.Sprintf(DIAGNOSTICS_KEY_FORMAT, regionID, date)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete diagnostics key %s: %w", key, err)
	}
	return nil
}

// SetExportTask caches an export task record for one region and
// period date.
func (dao *RedisNppDAO) SetExportTask(task *models.ExportTask) error {
	key := fmt.Sprintf(EXPORT_TASK_KEY_FORMAT, task.RegionID, task.Date)
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal export task %s: %w", task.TaskID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set export task in redis: %w", err)
	}
	return nil
}

// GetExportTask retrieves the cached export task for one region and
// period date.
func (dao *RedisNppDAO) GetExportTask(regionID, date string) (*models.ExportTask, error) {
	key := fmt.Sprintf(EXPORT_TASK_KEY_FORMAT, regionID, date)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get export task from redis: %w", err)
	}
	var task models.ExportTask
	if err := json.Unmarshal([]byte(str), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal export task JSON: %w", err)
	}
	return &task, nil
}

// ListExportTasks returns all cached export tasks for a region.
func (dao *RedisNppDAO) ListExportTasks(regionID string) ([]models.ExportTask, error) {
	pattern := fmt.Sprintf(EXPORT_TASK_KEY_FORMAT, regionID, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list export task keys: %w", err)
	}

	tasks := make([]models.ExportTask, 0, len(keys))
	for _, k := range keys {
		str, err := dao.client.Get(k)
		if err != nil {
			continue
		}
		var task models.ExportTask
		if err := json.Unmarshal([]byte(str), &task); err != nil {
			return nil, fmt.Errorf("failed to unmarshal export task JSON: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
