package service_test

import (
	"context"
	"testing"

	"florexport/internal/codigo"
	"florexport/internal/model"
	"florexport/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogoFixture: variedades Rojo, Blanco, Surtido; tamaños 40, 50, 60.
type catalogoFixture struct {
	repo                  *stubCatalogoRepo
	grupo                 uuid.UUID
	rojo, blanco, surtido uuid.UUID
	t40, t50, t60         uuid.UUID
}

func newCatalogoFixture(t *testing.T) *catalogoFixture {
	t.Helper()
	ctx := context.Background()
	repo := newStubCatalogoRepo()
	f := &catalogoFixture{repo: repo}

	g := &model.Grupo{Nombre: "Flores"}
	require.NoError(t, repo.CrearGrupo(ctx, g))
	f.grupo = g.ID

	for _, v := range []struct {
		nombre  string
		surtido bool
		dst     *uuid.UUID
	}{{"Rojo", false, &f.rojo}, {"Blanco", false, &f.blanco}, {"Surtido", true, &f.surtido}} {
		m := &model.Variedad{Nombre: v.nombre, EsSurtido: v.surtido}
		require.NoError(t, repo.CrearVariedad(ctx, m))
		*v.dst = m.ID
	}
	for _, tm := range []struct {
		nombre string
		dst    *uuid.UUID
	}{{"40cm", &f.t40}, {"50cm", &f.t50}, {"60cm", &f.t60}} {
		m := &model.Tamano{Nombre: tm.nombre}
		require.NoError(t, repo.CrearTamano(ctx, m))
		*tm.dst = m.ID
	}
	return f
}

func (f *catalogoFixture) familia(t *testing.T, nombre string) uuid.UUID {
	t.Helper()
	m := &model.Familia{NombreCientifico: nombre, GrupoID: f.grupo}
	require.NoError(t, f.repo.CrearFamilia(context.Background(), m))
	return m.ID
}

func (f *catalogoFixture) regla(t *testing.T, familia uuid.UUID, variedad, tamano *uuid.UUID) uuid.UUID {
	t.Helper()
	r := &model.ConfiguracionPermitida{FamiliaID: familia, VariedadID: variedad, TamanoID: tamano}
	require.NoError(t, f.repo.CrearRegla(context.Background(), r))
	return r.ID
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func buildDerivacionSvc(t *testing.T, reintentos int) (service.DerivacionService, *catalogoFixture, *stubProductoRepo, *stubEncolador) {
	t.Helper()
	fx := newCatalogoFixture(t)
	prods := newStubProductoRepo()
	cola := &stubEncolador{}
	return service.NewDerivacionService(fx.repo, prods, cola, reintentos), fx, prods, cola
}

type par struct{ v, t uuid.UUID }

func pares(list []model.ProductoMaestro) map[par]string {
	out := make(map[par]string, len(list))
	for _, p := range list {
		out[par{p.VariedadID, p.TamanoID}] = p.Codigo
	}
	return out
}

func TestDerivar_CreaParesLegales(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 3)
	rosa := fx.familia(t, "Rosa")
	fx.regla(t, rosa, ptr(fx.rojo), nil)
	fx.regla(t, rosa, ptr(fx.blanco), ptr(fx.t50))

	resp, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Creados)
	assert.Equal(t, 0, resp.Omitidos)
	require.Len(t, resp.Productos, 4)

	for _, p := range resp.Productos {
		assert.Equal(t, "Rosa", p.Nombre, "name is the family display name")
		assert.Contains(t, p.Descripcion, p.Variedad)
		assert.Contains(t, p.Descripcion, p.Tamano)
	}

	list, _ := prods.ListarPorFamilia(context.Background(), rosa)
	got := pares(list)
	assert.Len(t, got, 4)
	for _, want := range []par{{fx.rojo, fx.t40}, {fx.rojo, fx.t50}, {fx.rojo, fx.t60}, {fx.blanco, fx.t50}} {
		assert.Contains(t, got, want)
	}
	assert.Equal(t, []string{"ROS-001", "ROS-002", "ROS-003", "ROS-004"}, codigos(list))
}

func TestDerivar_Idempotente(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 3)
	rosa := fx.familia(t, "Rosa")
	fx.regla(t, rosa, nil, nil)

	primero, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	assert.Equal(t, 9, primero.Creados)
	antes, _ := prods.ListarPorFamilia(context.Background(), rosa)

	segundo, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	assert.Equal(t, 0, segundo.Creados)
	assert.Equal(t, 9, segundo.Omitidos)
	assert.Empty(t, segundo.Productos)

	despues, _ := prods.ListarPorFamilia(context.Background(), rosa)
	assert.Equal(t, antes, despues)
}

func TestDerivar_SinReglasNoCreaNada(t *testing.T) {
	svc, fx, _, _ := buildDerivacionSvc(t, 3)
	rosa := fx.familia(t, "Rosa")

	resp, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	assert.Zero(t, resp.Creados)
	assert.Zero(t, resp.Omitidos)
	assert.NotNil(t, resp.Productos)
}

func TestDerivar_FamiliaInexistente(t *testing.T) {
	svc, _, _, _ := buildDerivacionSvc(t, 3)
	_, err := svc.Derivar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrFamiliaNoEncontrada)
}

func TestDerivar_FamiliaSinNombreNoGeneraCodigos(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 3)
	blanca := fx.familia(t, "  ")
	fx.regla(t, blanca, nil, nil)

	_, err := svc.Derivar(context.Background(), blanca)
	assert.ErrorIs(t, err, service.ErrEntradaInvalida)
	listado, err := prods.ListarPorFamilia(context.Background(), blanca)
	require.NoError(t, err)
	assert.Empty(t, listado)
}

func TestDerivar_PrefijoCompartidoNoColisiona(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 3)
	rosa := fx.familia(t, "Rosa")
	romero := fx.familia(t, "Rosmarinus officinalis")
	fx.regla(t, rosa, nil, ptr(fx.t40))
	fx.regla(t, romero, ptr(fx.rojo), nil)

	_, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	_, err = svc.Derivar(context.Background(), romero)
	require.NoError(t, err)

	a, _ := prods.ListarPorFamilia(context.Background(), rosa)
	b, _ := prods.ListarPorFamilia(context.Background(), romero)
	todos := append(codigos(a), codigos(b)...)

	vistos := map[string]bool{}
	ultimo := 0
	for _, c := range todos {
		assert.False(t, vistos[c], "duplicate code %s", c)
		vistos[c] = true
		n, ok := codigo.Sufijo(c, "ROS")
		require.True(t, ok, c)
		assert.Greater(t, n, ultimo, "suffixes strictly increase per prefix")
		ultimo = n
	}
	assert.Len(t, vistos, 6)
}

func TestDerivar_ContinuaDesdeCodigosExistentes(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 3)
	rosa := fx.familia(t, "Rosa")
	otra := fx.familia(t, "Rosa canina")
	prods.insertar(model.ProductoMaestro{FamiliaID: otra, VariedadID: fx.rojo, TamanoID: fx.t40, Codigo: "ROS-017"})
	fx.regla(t, rosa, ptr(fx.blanco), ptr(fx.t60))

	resp, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	require.Len(t, resp.Productos, 1)
	assert.Equal(t, "ROS-018", resp.Productos[0].Codigo)
}

func TestDerivar_ReintentaAnteCodigoDuplicado(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 3)
	rosa := fx.familia(t, "Rosa")
	fx.regla(t, rosa, ptr(fx.rojo), ptr(fx.t40))
	prods.ocupados["ROS-001"] = true

	resp, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	require.Len(t, resp.Productos, 1)
	assert.Equal(t, "ROS-002", resp.Productos[0].Codigo)
	assert.Equal(t, 2, prods.reservas)
}

func TestDerivar_AgotaReintentos(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 2)
	rosa := fx.familia(t, "Rosa")
	fx.regla(t, rosa, ptr(fx.rojo), ptr(fx.t40))
	prods.ocupados["ROS-001"] = true
	prods.ocupados["ROS-002"] = true

	_, err := svc.Derivar(context.Background(), rosa)
	assert.ErrorIs(t, err, service.ErrConflictoCodigo)
}

func TestDerivar_TripleCreadoConcurrentementeCuentaComoOmitido(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 3)
	rosa := fx.familia(t, "Rosa")
	fx.regla(t, rosa, ptr(fx.rojo), ptr(fx.t40))

	// Another derivation wins the race for the same triple.
	prods.antesDeCrear = func(p *model.ProductoMaestro) {
		prods.antesDeCrear = nil
		prods.insertar(model.ProductoMaestro{FamiliaID: p.FamiliaID, VariedadID: p.VariedadID, TamanoID: p.TamanoID, Codigo: "ROS-900"})
	}

	resp, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Creados)
	assert.Equal(t, 1, resp.Omitidos)

	list, _ := prods.ListarPorFamilia(context.Background(), rosa)
	assert.Len(t, list, 1)
}

func TestObsoletos_ReglaEliminadaNoBorraProductos(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 3)
	rosa := fx.familia(t, "Rosa")
	fx.regla(t, rosa, ptr(fx.rojo), nil)
	blanco50 := fx.regla(t, rosa, ptr(fx.blanco), ptr(fx.t50))

	_, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	require.NoError(t, fx.repo.EliminarRegla(context.Background(), blanco50))

	obs, err := svc.Obsoletos(context.Background(), rosa)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, fx.blanco, obs[0].VariedadID)
	assert.Equal(t, fx.t50, obs[0].TamanoID)

	list, _ := prods.ListarPorFamilia(context.Background(), rosa)
	assert.Len(t, list, 4)

	again, err := svc.Derivar(context.Background(), rosa)
	require.NoError(t, err)
	assert.Zero(t, again.Creados)
	assert.Equal(t, 3, again.Omitidos)
}

func TestDerivarTodas_EncolaCadaFamilia(t *testing.T) {
	svc, fx, _, cola := buildDerivacionSvc(t, 3)
	a := fx.familia(t, "Rosa")
	b := fx.familia(t, "Gypsophila")

	resp, err := svc.DerivarTodas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Encoladas)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, cola.familias)
}

func codigos(list []model.ProductoMaestro) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Codigo
	}
	return out
}

func TestListarProductos_OrdenNumericoDelCodigo(t *testing.T) {
	svc, fx, prods, _ := buildDerivacionSvc(t, 3)
	rosa := fx.familia(t, "Rosa")
	for _, c := range []string{"ROS-1000", "ROS-999", "ROS-002"} {
		prods.insertar(model.ProductoMaestro{FamiliaID: rosa, VariedadID: uuid.New(), TamanoID: fx.t40, Nombre: "Rosa", Codigo: c})
	}

	list, err := svc.ListarProductos(context.Background(), rosa)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"ROS-002", "ROS-999", "ROS-1000"}, []string{list[0].Codigo, list[1].Codigo, list[2].Codigo})
}
