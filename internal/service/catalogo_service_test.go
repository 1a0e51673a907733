package service_test

import (
	"context"
	"testing"

	"florexport/internal/dto"
	"florexport/internal/model"
	"florexport/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogo_CrearFamiliaRequiereGrupo(t *testing.T) {
	svc := service.NewCatalogoService(newStubCatalogoRepo(), nil)
	_, err := svc.CrearFamilia(context.Background(), dto.CrearFamiliaRequest{NombreCientifico: "Rosa", GrupoID: uuid.NewString()})
	assert.ErrorIs(t, err, service.ErrGrupoNoEncontrado)
}

func TestCatalogo_CrearFamilia(t *testing.T) {
	svc := service.NewCatalogoService(newStubCatalogoRepo(), nil)
	g, err := svc.CrearGrupo(context.Background(), dto.CrearGrupoRequest{Nombre: "Flores"})
	require.NoError(t, err)

	f, err := svc.CrearFamilia(context.Background(), dto.CrearFamiliaRequest{NombreCientifico: "Rosa", GrupoID: g.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Flores", f.Grupo)
	assert.Equal(t, g.ID, f.GrupoID)
}

func TestCatalogo_OpcionesSiguenLasReglas(t *testing.T) {
	fx := newCatalogoFixture(t)
	svc := service.NewCatalogoService(fx.repo, nil)
	rosa := fx.familia(t, "Rosa")
	ctx := context.Background()

	vars, err := svc.OpcionesVariedades(ctx, rosa)
	require.NoError(t, err)
	assert.Empty(t, vars, "no rules means no options, not an error")

	_, err = svc.AgregarRegla(ctx, rosa, dto.CrearReglaRequest{VariedadID: str(fx.rojo.String())})
	require.NoError(t, err)
	_, err = svc.AgregarRegla(ctx, rosa, dto.CrearReglaRequest{VariedadID: str(fx.blanco.String()), TamanoID: str(fx.t60.String())})
	require.NoError(t, err)

	vars, err = svc.OpcionesVariedades(ctx, rosa)
	require.NoError(t, err)
	require.Len(t, vars, 2)
	assert.Equal(t, "Rojo", vars[0].Nombre)
	assert.Equal(t, "Blanco", vars[1].Nombre)

	rojo, err := svc.OpcionesTamanos(ctx, rosa, fx.rojo)
	require.NoError(t, err)
	assert.Len(t, rojo, 3, "size wildcard expands to the whole catalog")

	blanco, err := svc.OpcionesTamanos(ctx, rosa, fx.blanco)
	require.NoError(t, err)
	require.Len(t, blanco, 1)
	assert.Equal(t, fx.t60, blanco[0].ID)

	surtido, err := svc.OpcionesTamanos(ctx, rosa, fx.surtido)
	require.NoError(t, err)
	assert.Empty(t, surtido)
}

func TestCatalogo_AgregarReglaComodin(t *testing.T) {
	fx := newCatalogoFixture(t)
	svc := service.NewCatalogoService(fx.repo, nil)
	rosa := fx.familia(t, "Rosa")

	r, err := svc.AgregarRegla(context.Background(), rosa, dto.CrearReglaRequest{})
	require.NoError(t, err)
	assert.Nil(t, r.VariedadID)
	assert.Nil(t, r.TamanoID)

	vars, err := svc.OpcionesVariedades(context.Background(), rosa)
	require.NoError(t, err)
	assert.Len(t, vars, 3)
}

func TestCatalogo_AgregarReglaValidaReferencias(t *testing.T) {
	fx := newCatalogoFixture(t)
	svc := service.NewCatalogoService(fx.repo, nil)
	rosa := fx.familia(t, "Rosa")
	ctx := context.Background()

	_, err := svc.AgregarRegla(ctx, uuid.New(), dto.CrearReglaRequest{})
	assert.ErrorIs(t, err, service.ErrFamiliaNoEncontrada)

	_, err = svc.AgregarRegla(ctx, rosa, dto.CrearReglaRequest{VariedadID: str(uuid.NewString())})
	assert.ErrorIs(t, err, service.ErrVariedadNoEncontrada)

	_, err = svc.AgregarRegla(ctx, rosa, dto.CrearReglaRequest{TamanoID: str(uuid.NewString())})
	assert.ErrorIs(t, err, service.ErrTamanoNoEncontrado)
}

func TestCatalogo_EliminarRegla(t *testing.T) {
	fx := newCatalogoFixture(t)
	svc := service.NewCatalogoService(fx.repo, nil)
	rosa := fx.familia(t, "Rosa")
	ctx := context.Background()

	r, err := svc.AgregarRegla(ctx, rosa, dto.CrearReglaRequest{VariedadID: str(fx.rojo.String())})
	require.NoError(t, err)
	require.NoError(t, svc.EliminarRegla(ctx, r.ID))

	reglas, err := svc.Reglas(ctx, rosa)
	require.NoError(t, err)
	assert.Empty(t, reglas)

	assert.ErrorIs(t, svc.EliminarRegla(ctx, r.ID), service.ErrReglaNoEncontrada)
}

func TestCatalogo_OpcionesCacheadasSeRenuevanAlCrecerElCatalogo(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	fx := newCatalogoFixture(t)
	svc := service.NewCatalogoService(fx.repo, rdb)
	rosa := fx.familia(t, "Rosa")
	ctx := context.Background()

	_, err := svc.AgregarRegla(ctx, rosa, dto.CrearReglaRequest{})
	require.NoError(t, err)
	vars, err := svc.OpcionesVariedades(ctx, rosa)
	require.NoError(t, err)
	require.Len(t, vars, 3)
	tams, err := svc.OpcionesTamanos(ctx, rosa, fx.rojo)
	require.NoError(t, err)
	require.Len(t, tams, 3)

	// Written behind the service's back: the cached cascade keeps serving.
	require.NoError(t, fx.repo.CrearVariedad(ctx, &model.Variedad{Nombre: "Lila"}))
	vars, err = svc.OpcionesVariedades(ctx, rosa)
	require.NoError(t, err)
	assert.Len(t, vars, 3)

	_, err = svc.CrearVariedad(ctx, dto.CrearOpcionRequest{Nombre: "Amarillo"})
	require.NoError(t, err)
	vars, err = svc.OpcionesVariedades(ctx, rosa)
	require.NoError(t, err)
	assert.Len(t, vars, 5, "a wildcard family sees new varieties")

	_, err = svc.CrearTamano(ctx, dto.CrearOpcionRequest{Nombre: "70cm"})
	require.NoError(t, err)
	tams, err = svc.OpcionesTamanos(ctx, rosa, fx.rojo)
	require.NoError(t, err)
	assert.Len(t, tams, 4, "a wildcard family sees new sizes")
}

func TestCatalogo_ReglaNuevaInvalidaOpcionesCacheadas(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	fx := newCatalogoFixture(t)
	svc := service.NewCatalogoService(fx.repo, rdb)
	rosa := fx.familia(t, "Rosa")
	ctx := context.Background()

	_, err := svc.AgregarRegla(ctx, rosa, dto.CrearReglaRequest{VariedadID: str(fx.rojo.String())})
	require.NoError(t, err)
	vars, err := svc.OpcionesVariedades(ctx, rosa)
	require.NoError(t, err)
	require.Len(t, vars, 1)

	_, err = svc.AgregarRegla(ctx, rosa, dto.CrearReglaRequest{VariedadID: str(fx.blanco.String())})
	require.NoError(t, err)
	vars, err = svc.OpcionesVariedades(ctx, rosa)
	require.NoError(t, err)
	assert.Len(t, vars, 2)
}

func TestCatalogo_NombresEnBlancoRechazados(t *testing.T) {
	fx := newCatalogoFixture(t)
	svc := service.NewCatalogoService(fx.repo, nil)
	ctx := context.Background()

	_, err := svc.CrearFamilia(ctx, dto.CrearFamiliaRequest{NombreCientifico: "   ", GrupoID: fx.grupo.String()})
	assert.ErrorIs(t, err, service.ErrEntradaInvalida)
	_, err = svc.CrearVariedad(ctx, dto.CrearOpcionRequest{Nombre: "\t"})
	assert.ErrorIs(t, err, service.ErrEntradaInvalida)
	_, err = svc.CrearTamano(ctx, dto.CrearOpcionRequest{Nombre: " "})
	assert.ErrorIs(t, err, service.ErrEntradaInvalida)

	f, err := svc.CrearFamilia(ctx, dto.CrearFamiliaRequest{NombreCientifico: "  Rosa ", GrupoID: fx.grupo.String()})
	require.NoError(t, err)
	assert.Equal(t, "Rosa", f.NombreCientifico)
}
