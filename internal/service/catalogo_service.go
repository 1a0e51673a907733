package service

import (
	"context"

	"florexport/internal/configuracion"
	"florexport/internal/dto"
	"florexport/internal/model"
	"florexport/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CatalogoService manages the category hierarchy, the global variant and size
// catalogs and the per-family allow-rules.
type CatalogoService interface {
	CrearGrupo(ctx context.Context, req dto.CrearGrupoRequest) (dto.GrupoResponse, error)
	CrearFamilia(ctx context.Context, req dto.CrearFamiliaRequest) (dto.FamiliaResponse, error)
	ListarFamilias(ctx context.Context) ([]dto.FamiliaResponse, error)
	CrearVariedad(ctx context.Context, req dto.CrearOpcionRequest) (dto.OpcionResponse, error)
	CrearTamano(ctx context.Context, req dto.CrearOpcionRequest) (dto.OpcionResponse, error)

	Reglas(ctx context.Context, familiaID uuid.UUID) ([]dto.ReglaResponse, error)
	AgregarRegla(ctx context.Context, familiaID uuid.UUID, req dto.CrearReglaRequest) (dto.ReglaResponse, error)
	EliminarRegla(ctx context.Context, id uuid.UUID) error

	OpcionesVariedades(ctx context.Context, familiaID uuid.UUID) ([]configuracion.Opcion, error)
	OpcionesTamanos(ctx context.Context, familiaID, variedadID uuid.UUID) ([]configuracion.Opcion, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
	rdb  *redis.Client
}

func NewCatalogoService(repo repository.CatalogoRepository, rdb *redis.Client) CatalogoService {
	return &catalogoService{repo: repo, rdb: rdb}
}

func mapFamilia(f model.Familia) dto.FamiliaResponse {
	resp := dto.FamiliaResponse{ID: f.ID, NombreCientifico: f.NombreCientifico, GrupoID: f.GrupoID}
	if f.Grupo != nil {
		resp.Grupo = f.Grupo.Nombre
	}
	return resp
}

func mapRegla(r model.ConfiguracionPermitida) dto.ReglaResponse {
	return dto.ReglaResponse{ID: r.ID, FamiliaID: r.FamiliaID, VariedadID: r.VariedadID, TamanoID: r.TamanoID}
}

func (s *catalogoService) CrearGrupo(ctx context.Context, req dto.CrearGrupoRequest) (dto.GrupoResponse, error) {
	nombre, err := nombreRequerido("nombre", req.Nombre)
	if err != nil {
		return dto.GrupoResponse{}, err
	}
	g := &model.Grupo{Nombre: nombre}
	if err := s.repo.CrearGrupo(ctx, g); err != nil {
		return dto.GrupoResponse{}, err
	}
	return dto.GrupoResponse{ID: g.ID, Nombre: g.Nombre}, nil
}

// CrearFamilia rejects names that are blank once trimmed: the name is the
// source of the product code prefix.
func (s *catalogoService) CrearFamilia(ctx context.Context, req dto.CrearFamiliaRequest) (dto.FamiliaResponse, error) {
	nombre, err := nombreRequerido("nombre_cientifico", req.NombreCientifico)
	if err != nil {
		return dto.FamiliaResponse{}, err
	}
	grupoID, err := parseID("grupo_id", req.GrupoID)
	if err != nil {
		return dto.FamiliaResponse{}, err
	}
	grupo, err := s.repo.GrupoPorID(ctx, grupoID)
	if err != nil {
		return dto.FamiliaResponse{}, noEncontrado(err, ErrGrupoNoEncontrado)
	}
	f := &model.Familia{NombreCientifico: nombre, GrupoID: grupo.ID}
	if err := s.repo.CrearFamilia(ctx, f); err != nil {
		return dto.FamiliaResponse{}, err
	}
	f.Grupo = grupo
	return mapFamilia(*f), nil
}

func (s *catalogoService) ListarFamilias(ctx context.Context) ([]dto.FamiliaResponse, error) {
	list, err := s.repo.ListarFamilias(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FamiliaResponse, 0, len(list))
	for _, f := range list {
		out = append(out, mapFamilia(f))
	}
	return out, nil
}

func (s *catalogoService) CrearVariedad(ctx context.Context, req dto.CrearOpcionRequest) (dto.OpcionResponse, error) {
	nombre, err := nombreRequerido("nombre", req.Nombre)
	if err != nil {
		return dto.OpcionResponse{}, err
	}
	v := &model.Variedad{Nombre: nombre, EsSurtido: req.EsSurtido}
	if err := s.repo.CrearVariedad(ctx, v); err != nil {
		return dto.OpcionResponse{}, err
	}
	invalidarOpciones(ctx, s.rdb)
	return dto.OpcionResponse{ID: v.ID, Nombre: v.Nombre, EsSurtido: v.EsSurtido}, nil
}

func (s *catalogoService) CrearTamano(ctx context.Context, req dto.CrearOpcionRequest) (dto.OpcionResponse, error) {
	nombre, err := nombreRequerido("nombre", req.Nombre)
	if err != nil {
		return dto.OpcionResponse{}, err
	}
	t := &model.Tamano{Nombre: nombre}
	if err := s.repo.CrearTamano(ctx, t); err != nil {
		return dto.OpcionResponse{}, err
	}
	invalidarOpciones(ctx, s.rdb)
	return dto.OpcionResponse{ID: t.ID, Nombre: t.Nombre}, nil
}

func (s *catalogoService) Reglas(ctx context.Context, familiaID uuid.UUID) ([]dto.ReglaResponse, error) {
	if _, err := s.repo.FamiliaPorID(ctx, familiaID); err != nil {
		return nil, noEncontrado(err, ErrFamiliaNoEncontrada)
	}
	rows, err := s.repo.ReglasPorFamilia(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReglaResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapRegla(r))
	}
	return out, nil
}

// AgregarRegla stores a rule as given. Rules that overlap existing ones are
// accepted; resolution treats the rule set as a union.
func (s *catalogoService) AgregarRegla(ctx context.Context, familiaID uuid.UUID, req dto.CrearReglaRequest) (dto.ReglaResponse, error) {
	if _, err := s.repo.FamiliaPorID(ctx, familiaID); err != nil {
		return dto.ReglaResponse{}, noEncontrado(err, ErrFamiliaNoEncontrada)
	}
	variedadID, err := parseIDOpcional("variedad_id", req.VariedadID)
	if err != nil {
		return dto.ReglaResponse{}, err
	}
	tamanoID, err := parseIDOpcional("tamano_id", req.TamanoID)
	if err != nil {
		return dto.ReglaResponse{}, err
	}
	if variedadID != nil {
		if _, err := s.repo.VariedadPorID(ctx, *variedadID); err != nil {
			return dto.ReglaResponse{}, noEncontrado(err, ErrVariedadNoEncontrada)
		}
	}
	if tamanoID != nil {
		if _, err := s.repo.TamanoPorID(ctx, *tamanoID); err != nil {
			return dto.ReglaResponse{}, noEncontrado(err, ErrTamanoNoEncontrado)
		}
	}

	regla := configuracion.Regla{
		Variedad: configuracion.SelectorDesde(variedadID),
		Tamano:   configuracion.SelectorDesde(tamanoID),
	}
	row := &model.ConfiguracionPermitida{
		FamiliaID:  familiaID,
		VariedadID: regla.Variedad.Puntero(),
		TamanoID:   regla.Tamano.Puntero(),
	}
	if err := s.repo.CrearRegla(ctx, row); err != nil {
		return dto.ReglaResponse{}, err
	}
	cacheDel(ctx, s.rdb, keyOpciones(ctx, s.rdb, familiaID))
	return mapRegla(*row), nil
}

func (s *catalogoService) EliminarRegla(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.ReglaPorID(ctx, id)
	if err != nil {
		return noEncontrado(err, ErrReglaNoEncontrada)
	}
	if err := s.repo.EliminarRegla(ctx, id); err != nil {
		return err
	}
	cacheDel(ctx, s.rdb, keyOpciones(ctx, s.rdb, row.FamiliaID))
	return nil
}

func (s *catalogoService) OpcionesVariedades(ctx context.Context, familiaID uuid.UUID) ([]configuracion.Opcion, error) {
	key := keyOpciones(ctx, s.rdb, familiaID)
	var cached []configuracion.Opcion
	if cacheGetHash(ctx, s.rdb, key, "variedades", &cached) {
		return cached, nil
	}
	reglas, err := s.reglas(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	catalogo, err := variedadesCatalogo(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	out := configuracion.Variedades(reglas, catalogo)
	cacheSetHash(ctx, s.rdb, key, "variedades", out)
	return out, nil
}

func (s *catalogoService) OpcionesTamanos(ctx context.Context, familiaID, variedadID uuid.UUID) ([]configuracion.Opcion, error) {
	key := keyOpciones(ctx, s.rdb, familiaID)
	field := "tamanos:" + variedadID.String()
	var cached []configuracion.Opcion
	if cacheGetHash(ctx, s.rdb, key, field, &cached) {
		return cached, nil
	}
	reglas, err := s.reglas(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	catalogo, err := tamanosCatalogo(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	out := configuracion.Tamanos(reglas, variedadID, catalogo)
	cacheSetHash(ctx, s.rdb, key, field, out)
	return out, nil
}

func (s *catalogoService) reglas(ctx context.Context, familiaID uuid.UUID) ([]configuracion.Regla, error) {
	if _, err := s.repo.FamiliaPorID(ctx, familiaID); err != nil {
		return nil, noEncontrado(err, ErrFamiliaNoEncontrada)
	}
	rows, err := s.repo.ReglasPorFamilia(ctx, familiaID)
	if err != nil {
		return nil, err
	}
	return configuracion.ReglasDesdeModelo(rows), nil
}

func variedadesCatalogo(ctx context.Context, repo repository.CatalogoRepository) ([]configuracion.Opcion, error) {
	list, err := repo.ListarVariedades(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]configuracion.Opcion, len(list))
	for i, v := range list {
		out[i] = configuracion.Opcion{ID: v.ID, Nombre: v.Nombre}
	}
	return out, nil
}

func tamanosCatalogo(ctx context.Context, repo repository.CatalogoRepository) ([]configuracion.Opcion, error) {
	list, err := repo.ListarTamanos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]configuracion.Opcion, len(list))
	for i, t := range list {
		out[i] = configuracion.Opcion{ID: t.ID, Nombre: t.Nombre}
	}
	return out, nil
}
