// Package seed loads the reference catalog (services, profiles, rooms...) from YAML.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"shiftdesk/internal/models"
)

//go:embed default.yaml
var Default []byte

type Catalog struct {
	Services []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"services"`
	AttentionProfiles []struct {
		Name     string   `yaml:"name"`
		Services []string `yaml:"services"`
	} `yaml:"attention_profiles"`
	ClientTypes []struct {
		Name     string `yaml:"name"`
		Priority int    `yaml:"priority"`
	} `yaml:"client_types"`
	Rooms []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"rooms"`
	ModuleTypes []struct {
		Name string `yaml:"name"`
	} `yaml:"module_types"`
	Modules []struct {
		Name       string `yaml:"name"`
		IPAddress  string `yaml:"ip_address"`
		Room       string `yaml:"room"`
		ModuleType string `yaml:"module_type"`
	} `yaml:"modules"`
	AbsenceReasons []struct {
		Name string `yaml:"name"`
	} `yaml:"absence_reasons"`
}

func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	return c, nil
}

// Run inserts every catalog entry missing by name. Existing rows are kept
// as they are, so running it twice changes nothing.
func Run(ctx context.Context, db *gorm.DB, c Catalog, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		services := map[string]models.Service{}
		for _, s := range c.Services {
			svc := models.Service{}
			if err := tx.Where(models.Service{Name: s.Name}).
				Attrs(models.Service{Description: s.Description}).
				FirstOrCreate(&svc).Error; err != nil {
				return fmt.Errorf("service %q: %w", s.Name, err)
			}
			services[svc.Name] = svc
		}

		for _, p := range c.AttentionProfiles {
			profile := models.AttentionProfile{}
			if err := tx.Where(models.AttentionProfile{Name: p.Name}).FirstOrCreate(&profile).Error; err != nil {
				return fmt.Errorf("attention profile %q: %w", p.Name, err)
			}
			for _, name := range p.Services {
				svc, ok := services[name]
				if !ok {
					if err := tx.Where("name = ?", name).First(&svc).Error; err != nil {
						return fmt.Errorf("attention profile %q: unknown service %q", p.Name, name)
					}
				}
				if err := tx.Model(&profile).Association("Services").Append(&svc); err != nil {
					return fmt.Errorf("attention profile %q: link %q: %w", p.Name, name, err)
				}
			}
		}

		for _, ct := range c.ClientTypes {
			row := models.ClientType{}
			if err := tx.Where(models.ClientType{Name: ct.Name}).
				Attrs(models.ClientType{Priority: ct.Priority}).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("client type %q: %w", ct.Name, err)
			}
		}

		rooms := map[string]uint{}
		for _, r := range c.Rooms {
			room := models.Room{}
			if err := tx.Where(models.Room{Name: r.Name}).
				Attrs(models.Room{Description: r.Description}).
				FirstOrCreate(&room).Error; err != nil {
				return fmt.Errorf("room %q: %w", r.Name, err)
			}
			rooms[room.Name] = room.ID
		}

		moduleTypes := map[string]uint{}
		for _, mt := range c.ModuleTypes {
			row := models.ModuleType{}
			if err := tx.Where(models.ModuleType{Name: mt.Name}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("module type %q: %w", mt.Name, err)
			}
			moduleTypes[row.Name] = row.ID
		}

		for _, m := range c.Modules {
			roomID, ok := rooms[m.Room]
			if !ok {
				return fmt.Errorf("module %q: unknown room %q", m.Name, m.Room)
			}
			typeID, ok := moduleTypes[m.ModuleType]
			if !ok {
				return fmt.Errorf("module %q: unknown module type %q", m.Name, m.ModuleType)
			}
			row := models.Module{}
			if err := tx.Where(models.Module{Name: m.Name, RoomID: roomID}).
				Attrs(models.Module{IPAddress: m.IPAddress, ModuleTypeID: typeID}).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("module %q: %w", m.Name, err)
			}
		}

		for _, ar := range c.AbsenceReasons {
			row := models.AbsenceReason{}
			if err := tx.Where(models.AbsenceReason{Name: ar.Name}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("absence reason %q: %w", ar.Name, err)
			}
		}

		log.Info("catalog seeded",
			zap.Int("services", len(c.Services)),
			zap.Int("attention_profiles", len(c.AttentionProfiles)),
			zap.Int("client_types", len(c.ClientTypes)),
			zap.Int("rooms", len(c.Rooms)),
			zap.Int("module_types", len(c.ModuleTypes)),
			zap.Int("modules", len(c.Modules)),
			zap.Int("absence_reasons", len(c.AbsenceReasons)))
		return nil
	})
}
